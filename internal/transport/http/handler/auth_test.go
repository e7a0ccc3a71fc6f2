package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/auth"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) LoginRequest(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) LoginAttempt(ctx context.Context, verificationToken, code string) (*auth.TokenPair, error) {
	args := m.Called(ctx, verificationToken, code)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) RegisterRequest(ctx context.Context, name, email string) (string, error) {
	args := m.Called(ctx, name, email)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) RegisterVerify(ctx context.Context, verificationToken, code string) (*domain.User, error) {
	args := m.Called(ctx, verificationToken, code)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) RefreshTokens(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) PasswordLogin(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) PasswordRegister(ctx context.Context, name, email, password string) (*auth.TokenPair, error) {
	args := m.Called(ctx, name, email, password)
	if p, _ := args.Get(0).(*auth.TokenPair); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&eb))
	return eb
}

func TestLoginRequest_ReturnsVerificationToken(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginRequest", mock.Anything, "u1@example.com").Return("vtoken", nil)

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginRequest, "/v1/auth/login/request", map[string]string{"email": "u1@example.com"})

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp verificationTokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "vtoken", resp.VerificationToken)
}

func TestLoginRequest_InvalidEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginRequest, "/v1/auth/login/request", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "LoginRequest", mock.Anything, mock.Anything)
}

func TestLoginRequest_UnknownEmailCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginRequest", mock.Anything, "ghost@example.com").
		Return("", domain.Wrap(domain.ErrUserNotFound, "email ghost@example.com"))

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginRequest, "/v1/auth/login/request", map[string]string{"email": "ghost@example.com"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeErrorBody(t, rr).Code)
}

func TestLoginAttempt_ReturnsTokenPair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginAttempt", mock.Anything, "vtoken", "123456").
		Return(&auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginAttempt, "/v1/auth/login/attempt", map[string]string{
		"verification_token": "vtoken",
		"otp":                "123456",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var pair auth.TokenPair
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&pair))
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, "r", pair.RefreshToken)
}

func TestLoginAttempt_NonNumericCodeRejectedBeforeService(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginAttempt, "/v1/auth/login/attempt", map[string]string{
		"verification_token": "vtoken",
		"otp":                "12345a",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "LoginAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginAttempt_ExpiredVerificationCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginAttempt", mock.Anything, "vtoken", "123456").
		Return(nil, domain.Wrap(domain.ErrVerificationExpired, "verification v1"))

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginAttempt, "/v1/auth/login/attempt", map[string]string{
		"verification_token": "vtoken",
		"otp":                "123456",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "VERIFICATION_EXPIRED", decodeErrorBody(t, rr).Code)
}

func TestRegisterRequest_EmailTakenCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RegisterRequest", mock.Anything, "New User", "taken@example.com").
		Return("", domain.Wrap(domain.ErrEmailAlreadyInUse, "email taken@example.com"))

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.RegisterRequest, "/v1/auth/register/request", map[string]string{
		"name":  "New User",
		"email": "taken@example.com",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "USER_EMAIL_ALREADY_IN_USE", decodeErrorBody(t, rr).Code)
}

func TestRegisterVerify_CreatedUserNoTokens(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RegisterVerify", mock.Anything, "vtoken", "123456").
		Return(&domain.User{UserID: "u1", Email: "new@example.com", EmailVerified: true}, nil)

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.RegisterVerify, "/v1/auth/register/verify", map[string]string{
		"verification_token": "vtoken",
		"otp":                "123456",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	var u domain.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&u))
	assert.Equal(t, "u1", u.UserID)
	assert.True(t, u.EmailVerified)
}

func TestRefresh_ExpiredVsMalformedCodes(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RefreshTokens", mock.Anything, "expired").
		Return(nil, domain.Wrap(domain.ErrExpiredRefreshToken, "refresh"))
	svc.On("RefreshTokens", mock.Anything, "garbage").
		Return(nil, domain.Wrap(domain.ErrRefreshTokenDecode, "refresh"))

	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Refresh, "/v1/auth/refresh", map[string]string{"refresh_token": "expired"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "EXPIRED_REFRESH_TOKEN", decodeErrorBody(t, rr).Code)

	rr = postJSON(t, h.Refresh, "/v1/auth/refresh", map[string]string{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "REFRESH_TOKEN_DECODE_FAILED", decodeErrorBody(t, rr).Code)
}

func TestPasswordLogin_InvalidCredentialsCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("PasswordLogin", mock.Anything, "u1@example.com", "wrong").
		Return(nil, domain.Wrap(domain.ErrInvalidCredentials, "password login"))

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.PasswordLogin, "/v1/auth/login/password", map[string]string{
		"email":    "u1@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeErrorBody(t, rr).Code)
}

func TestPasswordRegister_ShortPasswordRejectedBeforeService(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)
	rr := postJSON(t, h.PasswordRegister, "/v1/auth/register/password", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "PasswordRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordRegister_ReturnsTokenPair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("PasswordRegister", mock.Anything, "New User", "new@example.com", "longenough").
		Return(&auth.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.PasswordRegister, "/v1/auth/register/password", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "longenough",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	var pair auth.TokenPair
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&pair))
	assert.Equal(t, "a", pair.AccessToken)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("LoginRequest", mock.Anything, "u1@example.com").
		Return("", assert.AnError)

	h := NewAuthHandler(svc)
	rr := postJSON(t, h.LoginRequest, "/v1/auth/login/request", map[string]string{"email": "u1@example.com"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	eb := decodeErrorBody(t, rr)
	assert.Equal(t, "INTERNAL", eb.Code)
	assert.Equal(t, "internal server error", eb.Error)
}
