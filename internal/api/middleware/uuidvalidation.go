// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/response"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/validation"
)

// ValidateDraftIDMiddleware validates that the draftID URL parameter is present and is a valid UUID.
// Returns 400 Bad Request if the draft ID is missing or invalid.
// Apply to every route nested under /draft/{draftID}.
//
// Example usage in router:
//
//	r.Route("/{draftID}", func(r chi.Router) {
//	    r.Use(middleware.ValidateDraftIDMiddleware)
//	    r.Get("/", handler.GetDraft)
//	    r.Put("/", handler.UpdateDraft)
//	})
func ValidateDraftIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		draftID := chi.URLParam(r, "draftID")

		if draftID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid draft ID is required", "")
			return
		}

		if err := validation.ValidateUUID(draftID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid draft ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
