package handlers

import (
	"errors"
	"net/http"

	"portfolio-tracker/internal/api/response"
	"portfolio-tracker/internal/apperrors"
	"portfolio-tracker/internal/validation"
)

// respondServiceError maps the error kinds the services return onto HTTP
// statuses: validation → 400, not-found → 404, external data failure →
// 502, anything else → 500. Validation errors include the field map so
// the form can annotate inputs while retaining their values.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}

	switch {
	case apperrors.IsValidation(err):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case apperrors.IsNotFound(err):
		response.RespondError(w, http.StatusNotFound, "not found", err.Error())
	case apperrors.IsDataFetch(err):
		response.RespondError(w, http.StatusBadGateway, "data fetch failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
