package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/pradiptha/lokapasar/internal/pkg/database"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

// AuthRepo bundles the durable account store (Postgres) and the TTL store
// (Redis) behind the service repository interfaces
type AuthRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewAuthRepo creates a new auth repository
func NewAuthRepo(cfg *models.Config, db *sqlx.DB, redisClient *database.RedisClient) *AuthRepo {
	return &AuthRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}
