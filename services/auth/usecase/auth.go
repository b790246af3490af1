package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	jwtpkg "github.com/pradiptha/lokapasar/internal/pkg/jwt"
	"github.com/pradiptha/lokapasar/internal/pkg/logger"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/internal/utils"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
	"golang.org/x/crypto/bcrypt"
)

// Register starts the registration flow: it verifies the email is unclaimed
// and issues an activation OTP. The account is only created once the OTP is
// verified.
func (u *AuthUC) Register(ctx context.Context, req *models.RegisterRequest) error {
	email, ok := utils.ValidateEmail(req.Email)
	if !ok {
		return domainerrors.ErrInvalidEmail
	}

	existing, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return domainerrors.ErrUserExists
	}

	return u.requestOTP(ctx, req.Name, email, models.PurposeRegistration)
}

// VerifyRegistration completes registration: the submitted OTP is consumed,
// the password hashed, and the account created.
func (u *AuthUC) VerifyRegistration(ctx context.Context, req *models.VerifyRegistrationRequest) (*models.User, error) {
	email, ok := utils.ValidateEmail(req.Email)
	if !ok {
		return nil, domainerrors.ErrInvalidEmail
	}

	existing, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domainerrors.ErrUserExists
	}

	if err := u.verifyOTP(ctx, email, req.OTP); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort; account creation already succeeded.
	_ = u.authGW.PublishUserRegistered(ctx, &models.UserRegisteredEvent{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Timestamp: time.Now(),
	})

	logger.InfoCtx(ctx, "User registered",
		logger.String("user_id", user.ID.String()),
		logger.String("email", utils.MaskEmail(user.Email)))

	return user, nil
}

// Login authenticates an account and mints an access/refresh token pair
func (u *AuthUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email, ok := utils.ValidateEmail(req.Email)
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := jwtpkg.GenerateTokenPair(user.ID, user.Email, u.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		UserID:           user.ID.String(),
		ExpiresAt:        pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh access token
func (u *AuthUC) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, "refresh", u.cfg.JWT.Secret)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	access, expiresAt, err := jwtpkg.GenerateToken(user.ID, user.Email, "access",
		time.Duration(u.cfg.JWT.AccessExpiration)*time.Minute, u.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: access,
		UserID:      user.ID.String(),
		ExpiresAt:   expiresAt,
	}, nil
}

// GetUserByID retrieves an account for the authenticated session
func (u *AuthUC) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.ErrUserNotFound
	}

	return u.userRepo.GetUserByID(ctx, userID)
}

// ForgotPassword starts the reset flow by issuing a reset OTP. The account
// must exist before any OTP is sent.
func (u *AuthUC) ForgotPassword(ctx context.Context, email string) error {
	normalized, ok := utils.ValidateEmail(email)
	if !ok {
		return domainerrors.ErrInvalidEmail
	}

	user, err := u.userRepo.GetUserByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domainerrors.ErrUserNotFound
	}

	return u.requestOTP(ctx, user.Name, normalized, models.PurposePasswordReset)
}

// VerifyPasswordResetOTP consumes the reset OTP for an identity
func (u *AuthUC) VerifyPasswordResetOTP(ctx context.Context, email, code string) error {
	normalized, ok := utils.ValidateEmail(email)
	if !ok {
		return domainerrors.ErrInvalidEmail
	}

	return u.verifyOTP(ctx, normalized, code)
}

// ResetPassword sets a new password after the reset OTP has been verified
func (u *AuthUC) ResetPassword(ctx context.Context, email, newPassword string) error {
	normalized, ok := utils.ValidateEmail(email)
	if !ok {
		return domainerrors.ErrInvalidEmail
	}

	user, err := u.userRepo.GetUserByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domainerrors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)); err == nil {
		return domainerrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, normalized, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.InfoCtx(ctx, "Password reset",
		logger.String("email", utils.MaskEmail(normalized)))

	return nil
}
