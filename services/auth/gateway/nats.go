package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pradiptha/lokapasar/internal/pkg/constants"
	"github.com/pradiptha/lokapasar/internal/pkg/logger"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/internal/utils"
)

// PublishUserRegistered publishes an account creation event
func (g *AuthGateway) PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal user registered event: %w", err)
	}

	if err := g.natsClient.Publish(constants.SubjectUserRegistered, data); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish user registered event",
			logger.String("user_id", event.UserID),
			logger.Err(err))
		return fmt.Errorf("failed to publish user registered event: %w", err)
	}

	logger.InfoCtx(ctx, "Published user registered event",
		logger.String("user_id", event.UserID))

	return nil
}

// PublishOTPIssued publishes an OTP issuance event. The email address is
// masked; the event is observability, not delivery.
func (g *AuthGateway) PublishOTPIssued(ctx context.Context, event *models.OTPIssuedEvent) error {
	masked := *event
	masked.Email = utils.MaskEmail(event.Email)

	data, err := json.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("failed to marshal otp issued event: %w", err)
	}

	if err := g.natsClient.Publish(constants.SubjectOTPIssued, data); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish otp issued event",
			logger.String("email", masked.Email),
			logger.Err(err))
		return fmt.Errorf("failed to publish otp issued event: %w", err)
	}

	return nil
}
