package handler

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/user"
	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/validate"
	"github.com/bernardmuller/expense-tracker-sub000/internal/transport/http/middleware"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// callerID resolves the authenticated user from the request context. The auth
// middleware guarantees the claims are present on protected routes.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthenticated"})
		return "", false
	}
	return claims.UserID, true
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var body domain.UpdateUserRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	u, err := h.svc.Update(r.Context(), userID, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
