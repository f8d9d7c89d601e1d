package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shopease/internal/middleware"
	"shopease/internal/model"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// internalErrorBody is sent when a response body cannot be encoded.
var internalErrorBody = model.ErrorResponse{
	Error:   model.ErrCodeInternalError,
	Message: "internal server error",
}

// writeJSON encodes data and writes it with the given status code. A value
// that cannot be encoded is logged and answered with a 500 instead.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}, logger zerolog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		correlationID := middleware.CorrelationID(r.Context())
		logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Int("status", status).
			Str("correlation_id", correlationID).
			Msg("failed to encode response")

		body := internalErrorBody
		body.CorrelationID = correlationID
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(body)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")

	writeJSON(w, r, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	}, logger)
}

// writeDomainError maps a service error onto a response.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var fields model.ValidationErrors
	if errors.As(err, &fields) {
		logger.Debug().Int("violations", len(fields)).Msg("validation failed")
		writeJSON(w, r, http.StatusBadRequest, model.ErrorResponse{
			Error:         model.ErrCodeInvalidDraft,
			Message:       "product draft is invalid",
			CorrelationID: middleware.CorrelationID(r.Context()),
			Fields:        fields,
		}, logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodeProductNotFound {
			status = http.StatusNotFound
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		writeError(w, r, http.StatusGatewayTimeout, model.ErrCodeInternalError, "catalogue did not respond in time", logger)
		return
	}

	if errors.Is(err, context.Canceled) {
		logger.Debug().Str("path", r.URL.Path).Msg("request cancelled by client")
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected service error")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeJSON decodes a bounded request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// pathID extracts the trailing path segment after prefix.
func pathID(path, prefix string) model.ProductID {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return model.ProductID(strings.Trim(path[len(prefix):], "/"))
}

// methodNotAllowed writes the standard 405 response.
func methodNotAllowed(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) {
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
}

// NotFound writes the standard 404 response for unknown routes.
func NotFound(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "route not found", logger)
	}
}
