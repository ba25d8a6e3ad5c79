package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/parthjadhav85/MyTools-Website/internal/middleware"
)

// SetupRoutes attaches the auth surface to the API router. Profile and account
// deletion sit behind the session middleware; /me and /logout answer anonymous
// callers too, so they stay public.
func (h *Handler) SetupRoutes(r chi.Router) {
	sessionFetcher := SessionInfo{Sessions: h.Sessions}

	r.Post("/register", h.RegisterHandler)
	r.Post("/login", h.LoginHandler)
	r.Get("/me", h.MeHandler)
	r.Post("/logout", h.LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/user/profile", h.ProfileHandler)
		r.Post("/user/delete", h.DeleteAccountHandler)
	})
}
