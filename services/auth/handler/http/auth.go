package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pradiptha/lokapasar/internal/pkg/logger"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/internal/utils"
	"github.com/pradiptha/lokapasar/services/auth"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// Register handles registration requests and issues an activation OTP
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	if err := h.authUC.Register(c.Request().Context(), &req); err != nil {
		return h.respondAuthError(c, err, "Register")
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent to your email, please verify to complete registration", nil)
}

// VerifyRegistration handles OTP verification and account creation
func (h *AuthHandler) VerifyRegistration(c echo.Context) error {
	var req models.VerifyRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	user, err := h.authUC.VerifyRegistration(c.Request().Context(), &req)
	if err != nil {
		return h.respondAuthError(c, err, "VerifyRegistration")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", user)
}

// Login handles login requests
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.authUC.Login(c.Request().Context(), &req)
	if err != nil {
		return h.respondAuthError(c, err, "Login")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.authUC.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return h.respondAuthError(c, err, "Refresh")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token refreshed", resp)
}

// ForgotPassword starts the password reset flow
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	if err := h.authUC.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return h.respondAuthError(c, err, "ForgotPassword")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password reset OTP sent to your email", nil)
}

// VerifyForgotPassword verifies the password reset OTP
func (h *AuthHandler) VerifyForgotPassword(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	if err := h.authUC.VerifyPasswordResetOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		return h.respondAuthError(c, err, "VerifyForgotPassword")
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP verified, you may now reset your password", nil)
}

// ResetPassword sets a new password after OTP verification
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return h.respondAuthError(c, err, "ResetPassword")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	user, err := h.authUC.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return h.respondAuthError(c, err, "Me")
	}

	return utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// respondAuthError maps domain errors to HTTP responses. Lock and throttle
// denials share 429 so clients can back off uniformly.
func (h *AuthHandler) respondAuthError(c echo.Context, err error, endpoint string) error {
	switch {
	case errors.Is(err, domainerrors.ErrAccountLocked),
		errors.Is(err, domainerrors.ErrSpamLocked),
		errors.Is(err, domainerrors.ErrCooldown),
		errors.Is(err, domainerrors.ErrOTPLockedOut):
		return utils.TooManyRequestsResponse(c, err.Error())

	case errors.Is(err, domainerrors.ErrOTPMissing),
		errors.Is(err, domainerrors.ErrInvalidEmail),
		errors.Is(err, domainerrors.ErrSamePassword):
		return utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return utils.UnauthorizedResponse(c, err.Error())

	case errors.Is(err, domainerrors.ErrUserExists):
		return utils.ErrorResponseHandler(c, http.StatusConflict, err.Error())

	case errors.Is(err, domainerrors.ErrUserNotFound):
		return utils.ErrorResponseHandler(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domainerrors.ErrDeliveryFailed):
		logger.Error("OTP delivery failed",
			logger.Err(err),
			logger.String("endpoint", endpoint))
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Failed to send OTP, please try again later")

	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		logger.Error("OTP store unavailable",
			logger.Err(err),
			logger.String("endpoint", endpoint))
		return utils.ServiceUnavailableResponse(c, "")
	}

	if mismatch, ok := domainerrors.IsOTPMismatch(err); ok {
		return utils.BadRequestResponse(c, mismatch.Error())
	}

	logger.Error("Unhandled auth error",
		logger.Err(err),
		logger.String("endpoint", endpoint))
	return utils.InternalServerErrorResponse(c, "")
}
