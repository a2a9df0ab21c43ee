// Package respond writes JSON response bodies.
//
// Encode and write failures go to slog.Default(). main installs the service
// logger there (logging.SlogLogger.Slog), so these lines share its handler,
// level and format.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Message is the body of status-only and error responses.
type Message struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("respond: encode payload failed", "error", err)
	}
}

// Error writes {"message": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Message: message})
}

// ErrorDetail writes {"message": message, "error": detail}.
func ErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Message{Message: message, Error: detail})
}

// Raw writes an already encoded JSON body.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Default().Error("respond: write body failed", "error", err)
	}
}
