// internal/app/features/analysis/routes.go
package analysis

import (
	"github.com/go-chi/chi/v5"

	"github.com/vedamschool/dsahub/internal/app/system/auth"
)

// Routes wires the topic-analysis feature; mounted at /api/analysis.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeAnalysis)
	})

	return r
}
