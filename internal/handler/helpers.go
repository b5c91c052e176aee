package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/boddenberg/tochka-go/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleWebhookError maps verification and decoding errors to HTTP responses.
// The token itself is never echoed or logged.
func handleWebhookError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var tokenErr *domain.ErrTokenDecode
	var decodeErr *domain.ErrDeserialize
	var cfgErr *domain.ErrConfig

	switch {
	case errors.As(err, &tokenErr), errors.As(err, &decodeErr):
		logger.Warn("webhook rejected", zap.String("error_kind", string(domain.KindOf(err))), zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid webhook token")
	case errors.As(err, &cfgErr):
		// Signing key unavailable; the bank redelivers later.
		logger.Error("webhook verification unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "verification unavailable")
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
