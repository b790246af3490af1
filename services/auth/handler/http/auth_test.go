package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradiptha/lokapasar/internal/pkg/models"
	"github.com/pradiptha/lokapasar/internal/utils"
	domainerrors "github.com/pradiptha/lokapasar/services/auth/domain/errors"
	"github.com/pradiptha/lokapasar/services/auth/mocks"
)

func setupHandlerTest(t *testing.T) (*AuthHandler, *mocks.MockAuthUC, *echo.Echo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewAuthHandler(mockUC)

	e := echo.New()
	e.Validator = utils.NewValidator()

	return handler, mockUC, e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterHandler_Success(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	mockUC.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req *models.RegisterRequest) error {
			assert.Equal(t, "a@x.com", req.Email)
			return nil
		})

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	handler, _, e := setupHandlerTest(t)

	// Password too short; the usecase is never reached
	body := `{"name": "Alice", "email": "a@x.com", "password": "short"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandler_CooldownMapsTo429(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(domainerrors.ErrCooldown)

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRegisterHandler_SpamLockMapsTo429(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(domainerrors.ErrSpamLocked)

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRegisterHandler_ExistingEmailMapsTo409(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(domainerrors.ErrUserExists)

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandler_DeliveryFailureMapsTo502(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(domainerrors.ErrDeliveryFailed)

	err := handler.Register(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVerifyRegistrationHandler_Success(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123", "otp": "4321"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register/verify", body)

	userID := uuid.New()
	mockUC.EXPECT().
		VerifyRegistration(gomock.Any(), gomock.Any()).
		Return(&models.User{ID: userID, Name: "Alice", Email: "a@x.com"}, nil)

	err := handler.VerifyRegistration(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, userID.String(), data["id"])
	// Password hashes never leave the service
	_, leaked := data["password"]
	assert.False(t, leaked)
}

func TestVerifyRegistrationHandler_MismatchReportsRemaining(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123", "otp": "1111"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register/verify", body)

	mockUC.EXPECT().
		VerifyRegistration(gomock.Any(), gomock.Any()).
		Return(nil, &domainerrors.OTPMismatchError{Remaining: 1})

	err := handler.VerifyRegistration(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "1 attempts left")
}

func TestVerifyRegistrationHandler_LockoutMapsTo429(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123", "otp": "1111"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register/verify", body)

	mockUC.EXPECT().
		VerifyRegistration(gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.ErrOTPLockedOut)

	err := handler.VerifyRegistration(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVerifyRegistrationHandler_ExpiredOTPMapsTo400(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"name": "Alice", "email": "a@x.com", "password": "password123", "otp": "4321"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register/verify", body)

	mockUC.EXPECT().
		VerifyRegistration(gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.ErrOTPMissing)

	err := handler.VerifyRegistration(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"email": "a@x.com", "password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/login", body)

	mockUC.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&models.AuthResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			UserID:       uuid.New().String(),
		}, nil)

	err := handler.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "access-token", data["access_token"])
}

func TestLoginHandler_InvalidCredentialsMapsTo401(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"email": "a@x.com", "password": "wrong"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/login", body)

	mockUC.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.ErrInvalidCredentials)

	err := handler.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgotPasswordHandler_StoreOutageMapsTo503(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"email": "a@x.com"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/forgot-password", body)

	mockUC.EXPECT().
		ForgotPassword(gomock.Any(), "a@x.com").
		Return(domainerrors.ErrStoreUnavailable)

	err := handler.ForgotPassword(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVerifyForgotPasswordHandler_Success(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"email": "a@x.com", "otp": "4321"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/forgot-password/verify", body)

	mockUC.EXPECT().
		VerifyPasswordResetOTP(gomock.Any(), "a@x.com", "4321").
		Return(nil)

	err := handler.VerifyForgotPassword(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPasswordHandler_SamePasswordMapsTo400(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	body := `{"email": "a@x.com", "new_password": "password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/reset-password", body)

	mockUC.EXPECT().
		ResetPassword(gomock.Any(), "a@x.com", "password123").
		Return(domainerrors.ErrSamePassword)

	err := handler.ResetPassword(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeHandler_Success(t *testing.T) {
	handler, mockUC, e := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	userID := uuid.New()
	c.Set("user_id", userID.String())

	mockUC.EXPECT().
		GetUserByID(gomock.Any(), userID.String()).
		Return(&models.User{ID: userID, Email: "a@x.com"}, nil)

	err := handler.Me(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeHandler_MissingIdentity(t *testing.T) {
	handler, _, e := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
