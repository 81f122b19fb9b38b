// internal/app/features/leaderboard/routes.go
package leaderboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/vedamschool/dsahub/internal/app/system/auth"
)

// Routes wires the leaderboard feature; mounted at /api/leaderboard.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeBoard)
	})

	return r
}
