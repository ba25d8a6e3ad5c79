package rating

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes attaches the rating endpoints; both are public.
func (h *Handler) SetupRoutes(r chi.Router) {
	r.Get("/rating/{tool}", h.GetRatingHandler)
	r.Post("/rate", h.SubmitRatingHandler)
}
