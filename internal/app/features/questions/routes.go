// internal/app/features/questions/routes.go
package questions

import (
	"github.com/go-chi/chi/v5"

	"github.com/vedamschool/dsahub/internal/app/system/auth"
)

// Routes wires the question catalog; mounted at /api/questions.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Post("/{id}/solve", h.HandleSolve)
	})

	return r
}

// MountSolves registers the ad-hoc solve endpoint on the API router.
func MountSolves(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/api/solves", h.HandleAdHocSolve)
	})
}
