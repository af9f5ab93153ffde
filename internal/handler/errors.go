package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a message for humans.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeNotFound   = "not_found"
	codeValidation = "validation_error"
	codeConflict   = "conflict"
	codeBadRequest = "bad_request"
	codeTooLarge   = "request_too_large"
	codeInternal   = "internal_error"
)

// notFoundBody returns an ErrorResponse for a missing resource, naming the
// kind of record when the error carries it (e.g. "trip not found").
func notFoundBody(err error) ErrorResponse {
	message := "not found"
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		message = string(nf.Entity) + " not found"
	}
	return ErrorResponse{Error: ErrorDetail{Code: codeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: codeValidation, Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (malformed JSON, unparsable parameters).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: codeBadRequest, Message: message}}
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.TripService.List: validation error: date range ..." -> "date range ..."
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// writeError maps a service error to its HTTP status and body. Storage and
// unexpected failures are logged here, once, and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(err))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		s.logger.InfoContext(r.Context(), "request conflicts with stored state", "error", err)
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code:    codeConflict,
			Message: conflictMessage(err),
		}})
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{
			Code:    codeTooLarge,
			Message: "request body too large",
		}})
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    codeInternal,
			Message: "internal server error",
		}})
	}
}

// conflictMessage names the entity whose constraint was violated without
// leaking driver details.
func conflictMessage(err error) string {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return string(storeErr.Entity) + " conflicts with existing data"
	}
	return "conflicts with existing data"
}
