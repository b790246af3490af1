package gateway

import (
	natspkg "github.com/pradiptha/lokapasar/internal/pkg/nats"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

// AuthGateway implements the auth service's outbound gateways: OTP mail
// delivery over SMTP and event publication over NATS
type AuthGateway struct {
	cfg        *models.Config
	natsClient *natspkg.Client
}

// NewAuthGateway creates a new auth gateway
func NewAuthGateway(cfg *models.Config, natsClient *natspkg.Client) *AuthGateway {
	return &AuthGateway{
		cfg:        cfg,
		natsClient: natsClient,
	}
}
