package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// pathID binds the {id} path parameter the way generated oapi-codegen
// wrappers do. On failure it writes a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(fmt.Sprintf("invalid format for parameter id: %v", err)))
		return openapi_types.UUID{}, false
	}
	return id, true
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer. dest is left nil when the parameter is absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// decodeJSON reads a JSON body into dest, rejecting unknown fields and
// trailing data.
func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// writeDecodeError reports a body that could not be decoded. Oversized
// bodies are 413, values rejected by a type's own validation are 422 and
// anything else is a malformed request.
func (s *Server) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, domain.ErrValidation):
		s.writeError(w, r, err)
	case errors.Is(err, openapi_types.ErrValidationEmail):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    codeValidation,
			Message: "email is not a valid email address",
		}})
	default:
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
