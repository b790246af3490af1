package handler

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pradiptha/lokapasar/internal/pkg/database"
	"github.com/pradiptha/lokapasar/internal/pkg/middleware"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	authHandler *http.AuthHandler
	redisClient *database.RedisClient
	cfg         *models.Config
}

// NewHandler creates and initializes the auth service handler
func NewHandler(
	authHandler *http.AuthHandler,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// GetJWTMiddleware returns the configured JWT middleware for HTTP requests
func (h *Handler) GetJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(h.cfg.JWT.Secret),
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			if use, _ := claims["use"].(string); use != "access" {
				return
			}
			if userID, exists := claims["user_id"]; exists {
				c.Set("user_id", fmt.Sprintf("%v", userID))
			}
			if email, exists := claims["email"]; exists {
				c.Set("email", fmt.Sprintf("%v", email))
			}
		},
	})
}

// RegisterRoutes registers the auth routes. Endpoints that trigger OTP
// issuance or verification carry an additional per-IP rate limit in front
// of the per-identity throttles.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	otpLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient,
		Resource:    "auth_otp",
		Limit:       10,
		Period:      time.Minute,
	})

	authGroup := e.Group("/auth")
	authGroup.POST("/register", h.authHandler.Register, otpLimiter)
	authGroup.POST("/register/verify", h.authHandler.VerifyRegistration)
	authGroup.POST("/login", h.authHandler.Login)
	authGroup.POST("/refresh", h.authHandler.Refresh)
	authGroup.POST("/forgot-password", h.authHandler.ForgotPassword, otpLimiter)
	authGroup.POST("/forgot-password/verify", h.authHandler.VerifyForgotPassword)
	authGroup.POST("/reset-password", h.authHandler.ResetPassword)

	protected := e.Group("/auth", h.GetJWTMiddleware())
	protected.GET("/me", h.authHandler.Me)
}
