package usecase

import (
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/services/auth"
)

// AuthUC implements the auth usecase
type AuthUC struct {
	cfg      *models.Config
	userRepo auth.UserRepo
	otpRepo  auth.OTPRepo
	authGW   auth.AuthGW
}

// NewAuthUC creates a new auth usecase
func NewAuthUC(
	cfg *models.Config,
	userRepo auth.UserRepo,
	otpRepo auth.OTPRepo,
	authGW auth.AuthGW,
) *AuthUC {
	return &AuthUC{
		cfg:      cfg,
		userRepo: userRepo,
		otpRepo:  otpRepo,
		authGW:   authGW,
	}
}
