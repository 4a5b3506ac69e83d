package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Message is the body used for every error and informational response.
type Message struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", slog.Any("error", err))
	}
}

// Error writes {message} for client faults.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Message: message})
}

// ErrorWithCause writes {message, error}; cause is omitted when empty.
func ErrorWithCause(w http.ResponseWriter, status int, message, cause string) {
	JSON(w, status, Message{Message: message, Error: cause})
}
