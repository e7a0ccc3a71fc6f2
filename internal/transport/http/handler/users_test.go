package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	jwtinfra "github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/jwt"
	"github.com/bernardmuller/expense-tracker-sub000/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) Deactivate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// withClaims injects access-token claims the way the auth middleware does.
func withClaims(req *http.Request, userID string) *http.Request {
	claims := &jwtinfra.UserClaims{UserID: userID}
	return req.WithContext(context.WithValue(req.Context(), middleware.ClaimsKey, claims))
}

func TestMe_ReturnsAuthenticatedUser(t *testing.T) {
	svc := &mockUserSvc{}
	svc.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "u1@example.com"}, nil)

	h := NewUserHandler(svc)
	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/users/me", nil), "u1")
	rr := httptest.NewRecorder()
	h.Me(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var u domain.User
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&u))
	assert.Equal(t, "u1", u.UserID)
}

func TestMe_NoClaims(t *testing.T) {
	svc := &mockUserSvc{}
	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/v1/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateMe_PartialUpdate(t *testing.T) {
	svc := &mockUserSvc{}
	name := "Renamed"
	svc.On("Update", mock.Anything, "u1", domain.UpdateUserRequest{Name: &name}).
		Return(&domain.User{UserID: "u1", Name: name}, nil)

	h := NewUserHandler(svc)
	raw, _ := json.Marshal(map[string]string{"name": "Renamed"})
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/me", bytes.NewReader(raw)), "u1")
	rr := httptest.NewRecorder()
	h.UpdateMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestDeleteMe_Deactivates(t *testing.T) {
	svc := &mockUserSvc{}
	svc.On("Deactivate", mock.Anything, "u1").Return(nil)

	h := NewUserHandler(svc)
	req := withClaims(httptest.NewRequest(http.MethodDelete, "/v1/users/me", nil), "u1")
	rr := httptest.NewRecorder()
	h.DeleteMe(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}
