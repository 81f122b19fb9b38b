// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// MountRoutes registers the credential endpoints on the API router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/api/signup", h.HandleSignup)
	r.Post("/api/login", h.HandleLogin)
	r.Post("/api/logout", h.HandleLogout)
}
