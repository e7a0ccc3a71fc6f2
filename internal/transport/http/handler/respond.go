package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

// writeError maps a service error onto the wire contract. Coded errors carry
// their own status and stable code; anything else is an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	code, status := domain.CodeOf(err)
	body := errorBody{Error: err.Error(), Code: code}
	if status == http.StatusInternalServerError {
		body.Error = "internal server error"
		slog.Error("request failed", "err", err)
	}
	writeJSON(w, status, body)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Code: domain.ErrBadRequest.Code})
}

// decodeBody decodes the JSON request body into dst and reports a client
// error on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}
