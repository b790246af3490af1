package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

func testGateway() *AuthGateway {
	return NewAuthGateway(&models.Config{
		SMTP: models.SMTPConfig{
			Host:    "127.0.0.1",
			Port:    1, // nothing listens here
			From:    "noreply@lokapasar.test",
			Timeout: 2,
		},
	}, nil)
}

func TestSendOTPEmail_UnknownPurpose(t *testing.T) {
	gw := testGateway()

	err := gw.SendOTPEmail(context.Background(), "a@x.com", "Alice", "4321", models.OTPPurpose("bogus"))
	assert.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)
}

func TestSendOTPEmail_UnreachableServer(t *testing.T) {
	gw := testGateway()

	err := gw.SendOTPEmail(context.Background(), "a@x.com", "Alice", "4321", models.PurposeRegistration)
	assert.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)
}

func TestSendOTPEmail_ContextCancelled(t *testing.T) {
	gw := testGateway()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	err := gw.SendOTPEmail(ctx, "a@x.com", "Alice", "4321", models.PurposeRegistration)
	assert.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)
}

func TestOTPTemplates_CoverEveryPurpose(t *testing.T) {
	for _, purpose := range []models.OTPPurpose{models.PurposeRegistration, models.PurposePasswordReset} {
		_, ok := otpTemplates[purpose]
		assert.True(t, ok, "missing mail template for purpose %q", purpose)
	}
}
