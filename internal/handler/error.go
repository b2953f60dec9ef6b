package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/dukerupert/gamestore/internal/middleware"
	"github.com/dukerupert/gamestore/internal/telemetry"
)

const internalErrorMessage = "An internal error occurred. Please try again later."

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse writes err as JSON or plain text depending on the request.
// Internal errors are logged and reported, and the client sees a generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	message := domain.ErrorMessage(err)
	if status == http.StatusInternalServerError {
		code = domain.EINTERNAL
		message = internalErrorMessage
		if err != nil {
			middleware.GetLogger(r.Context()).ErrorContext(r.Context(), "internal error",
				"error", err,
				"op", domain.ErrorOp(err),
				"method", r.Method,
				"path", r.URL.Path,
			)
			telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})
		}
	}

	writeError(w, r, status, errorDetail{Code: code, Message: message})
}

// ValidationErrorResponse writes field errors. Non-validation errors fall
// back to ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if !domain.IsValidationError(err) {
		ErrorResponse(w, r, err)
		return
	}

	writeError(w, r, http.StatusBadRequest, errorDetail{
		Code:    domain.EINVALID,
		Message: "Validation failed",
		Fields:  domain.GetValidationFields(err),
	})
}

// NotFoundResponse writes a 404.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "Page not found"))
}

// MethodNotAllowedResponse writes a 405.
func MethodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, errorDetail{
		Code:    domain.EINVALID,
		Message: "Method not allowed",
	})
}

// InternalErrorResponse writes a 500, reporting err when non-nil.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		writeError(w, r, http.StatusInternalServerError, errorDetail{
			Code:    domain.EINTERNAL,
			Message: internalErrorMessage,
		})
		return
	}
	ErrorResponse(w, r, domain.Internal(err, "", err.Error()))
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail errorDetail) {
	if acceptsJSON(r) {
		WriteJSON(w, status, errorBody{Error: detail})
		return
	}
	http.Error(w, detail.Message, status)
}

// acceptsJSON reports whether the client expects a JSON body.
func acceptsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.HasSuffix(r.URL.Path, ".json")
}
