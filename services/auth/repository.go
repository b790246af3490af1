package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/pradiptha/lokapasar/services/auth UserRepo,OTPRepo

// UserRepo defines the durable account store
type UserRepo interface {
	// GetUserByEmail returns (nil, nil) when no account exists, so callers
	// can do existence checks without treating absence as a failure.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// OTPRepo defines the TTL-store adapter for the OTP lifecycle state.
// Every lock and counter self-destructs via TTL; there is no unlock call.
type OTPRepo interface {
	// restriction markers
	IsAccountLocked(ctx context.Context, email string) (bool, error)
	IsSpamLocked(ctx context.Context, email string) (bool, error)
	IsInCooldown(ctx context.Context, email string) (bool, error)

	// request throttling
	IncrementRequestCount(ctx context.Context, email string) (int64, error)
	SetSpamLock(ctx context.Context, email string) error

	// code issuance
	StoreOTP(ctx context.Context, email, code string) error
	SetCooldown(ctx context.Context, email string) error

	// verification
	GetOTP(ctx context.Context, email string) (code string, found bool, err error)
	IncrementFailedAttempts(ctx context.Context, email string) (int64, error)
	SetAccountLock(ctx context.Context, email string) error
	ClearOTP(ctx context.Context, email string) error
}
