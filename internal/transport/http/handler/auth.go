package handler

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/auth"
	"github.com/bernardmuller/expense-tracker-sub000/internal/pkg/validate"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

type loginAttemptBody struct {
	VerificationToken string `json:"verification_token" validate:"required"`
	OTP               string `json:"otp" validate:"required,len=6,numeric"`
}

type registerRequestBody struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type passwordRegisterBody struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type passwordLoginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verificationTokenResponse struct {
	VerificationToken string `json:"verification_token"`
}

func (h *AuthHandler) LoginRequest(w http.ResponseWriter, r *http.Request) {
	var body loginRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	token, err := h.svc.LoginRequest(r.Context(), body.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verificationTokenResponse{VerificationToken: token})
}

func (h *AuthHandler) LoginAttempt(w http.ResponseWriter, r *http.Request) {
	var body loginAttemptBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	pair, err := h.svc.LoginAttempt(r.Context(), body.VerificationToken, body.OTP)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) RegisterRequest(w http.ResponseWriter, r *http.Request) {
	var body registerRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	token, err := h.svc.RegisterRequest(r.Context(), body.Name, body.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verificationTokenResponse{VerificationToken: token})
}

func (h *AuthHandler) RegisterVerify(w http.ResponseWriter, r *http.Request) {
	var body loginAttemptBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	u, err := h.svc.RegisterVerify(r.Context(), body.VerificationToken, body.OTP)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body refreshBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	pair, err := h.svc.RefreshTokens(r.Context(), body.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) PasswordRegister(w http.ResponseWriter, r *http.Request) {
	var body passwordRegisterBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	pair, err := h.svc.PasswordRegister(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pair)
}

func (h *AuthHandler) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	var body passwordLoginBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := validate.Struct(body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	pair, err := h.svc.PasswordLogin(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}
