package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/identity"
	"github.com/cyberquest/backend/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// returns a standardized error response to the client on failure.
// If it returns an error the HTTP response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(fmt.Sprintf("%s request: validation failed", actionName), "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// activeUser resolves the user the identity middleware stored on the request
// context. If it returns nil the 401 response has already been written.
func activeUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user, ok := identity.UserFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("Request without active user", "path", r.URL.Path)
		respondError(w, http.StatusUnauthorized, ErrMsgNoActiveUser)
		return nil
	}
	return user
}
