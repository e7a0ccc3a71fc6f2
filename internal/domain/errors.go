package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a coded domain error. Code is the stable machine-readable
// identifier clients switch on; Status is the HTTP status class the
// boundary layer renders it with. Services wrap these with %w so
// handlers can recover code and status via errors.As without ever
// leaking infrastructure errors to the client.
type Error struct {
	Code   string
	Status int
	msg    string
}

func (e *Error) Error() string { return e.msg }

func newError(code string, status int, msg string) *Error {
	return &Error{Code: code, Status: status, msg: msg}
}

var (
	// Input/state conflicts — recoverable by the caller changing input.
	ErrUserNotFound      = newError("USER_NOT_FOUND", http.StatusNotFound, "user not found")
	ErrEmailAlreadyInUse = newError("USER_EMAIL_ALREADY_IN_USE", http.StatusConflict, "email already in use")
	ErrEntityNotFound    = newError("ENTITY_NOT_FOUND", http.StatusNotFound, "entity not found")

	// Expiry/replay — recoverable by restarting the flow.
	ErrVerificationExpired = newError("VERIFICATION_EXPIRED", http.StatusUnauthorized, "verification expired")
	ErrExpiredRefreshToken = newError("EXPIRED_REFRESH_TOKEN", http.StatusUnauthorized, "refresh token expired")

	// Secret mismatch — recoverable by retry within the verification window.
	ErrInvalidOTP = newError("INVALID_OTP", http.StatusUnauthorized, "invalid otp")

	// Malformed/forged tokens — hostile input, fails closed.
	ErrInvalidVerificationToken = newError("INVALID_VERIFICATION_TOKEN", http.StatusUnauthorized, "invalid verification token")
	ErrRefreshTokenDecode       = newError("REFRESH_TOKEN_DECODE_FAILED", http.StatusUnauthorized, "refresh token decode failed")
	ErrInvalidCredentials       = newError("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid credentials")

	// Missing state.
	ErrVerificationNotFound = newError("VERIFICATION_NOT_FOUND", http.StatusNotFound, "verification not found")

	// Infrastructure faults — not recoverable by the caller.
	ErrOTPHash              = newError("OTP_HASH_FAILED", http.StatusInternalServerError, "otp hash failed")
	ErrOTPCompare           = newError("OTP_COMPARE_FAILED", http.StatusInternalServerError, "otp compare failed")
	ErrTokenGeneration      = newError("TOKEN_GENERATION_FAILED", http.StatusInternalServerError, "token generation failed")
	ErrVerificationCreation = newError("VERIFICATION_CREATION_FAILED", http.StatusInternalServerError, "verification creation failed")

	// Request-shape errors for the transport layer.
	ErrBadRequest = newError("BAD_REQUEST", http.StatusBadRequest, "bad request")
	ErrForbidden  = newError("FORBIDDEN", http.StatusForbidden, "forbidden")
)

// CodeOf resolves err to its domain error code and HTTP status.
// Unrecognized errors are reported as internal.
func CodeOf(err error) (code string, status int) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, de.Status
	}
	return "INTERNAL", http.StatusInternalServerError
}

// Wrap attaches context to a coded error, keeping the code recoverable
// through errors.As.
func Wrap(err *Error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
