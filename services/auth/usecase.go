package auth

import (
	"context"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/pradiptha/lokapasar/services/auth AuthUC

// AuthUC represents the auth usecase interface
type AuthUC interface {
	// registration flow
	Register(ctx context.Context, req *models.RegisterRequest) error
	VerifyRegistration(ctx context.Context, req *models.VerifyRegistrationRequest) (*models.User, error)

	// session flow
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// password reset flow
	ForgotPassword(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}
