package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/hospcare-be/internal/http/respond"
	"github.com/hongminglow/hospcare-be/internal/service"
)

// statusFor maps a workflow failure kind onto the HTTP status it is reported with.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation,
		service.KindDuplicateEmail,
		service.KindInvalidFileType,
		service.KindUserNotFound,
		service.KindInvalidToken,
		service.KindExpiredToken:
		return http.StatusBadRequest
	case service.KindInvalidCredentials, service.KindMissingToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Server faults and token failures
// carry the underlying cause in "error"; other client faults carry only the message.
func (h *AuthHandler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	writeServiceError(w, r, h.logger, err, fallback)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.ErrorContext(r.Context(), "unclassified failure", slog.String("path", r.URL.Path), slog.Any("error", err))
		respond.ErrorWithCause(w, http.StatusInternalServerError, fallback, err.Error())
		return
	}

	status := statusFor(svcErr.Kind)
	message := svcErr.Message
	if message == "" {
		message = fallback
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("kind", svcErr.Kind.String()),
			slog.Any("error", svcErr.Err),
		)
		respond.ErrorWithCause(w, status, message, svcErr.Cause())
	case svcErr.Kind == service.KindInvalidToken || svcErr.Kind == service.KindExpiredToken:
		respond.ErrorWithCause(w, status, message, svcErr.Cause())
	default:
		respond.Error(w, status, message)
	}
}
