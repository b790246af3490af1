package auth

import (
	"context"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/pradiptha/lokapasar/services/auth AuthGW

// AuthGW defines the auth service's outbound gateways
type AuthGW interface {
	// SendOTPEmail delivers a code to the identity; it may fail or time out,
	// and a failure must leave no OTP state behind.
	SendOTPEmail(ctx context.Context, email, name, code string, purpose models.OTPPurpose) error

	// Event publications. Failures are logged by implementations and never
	// fail the originating request.
	PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error
	PublishOTPIssued(ctx context.Context, event *models.OTPIssuedEvent) error
}
