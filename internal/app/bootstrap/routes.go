// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	analysisfeature "github.com/vedamschool/dsahub/internal/app/features/analysis"
	authgooglefeature "github.com/vedamschool/dsahub/internal/app/features/authgoogle"
	dashboardfeature "github.com/vedamschool/dsahub/internal/app/features/dashboard"
	healthfeature "github.com/vedamschool/dsahub/internal/app/features/health"
	leaderboardfeature "github.com/vedamschool/dsahub/internal/app/features/leaderboard"
	loginfeature "github.com/vedamschool/dsahub/internal/app/features/login"
	profilefeature "github.com/vedamschool/dsahub/internal/app/features/profile"
	questionsfeature "github.com/vedamschool/dsahub/internal/app/features/questions"
	userinfofeature "github.com/vedamschool/dsahub/internal/app/features/userinfo"
	accountstore "github.com/vedamschool/dsahub/internal/app/store/accounts"
	oauthstatestore "github.com/vedamschool/dsahub/internal/app/store/oauthstate"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/auth"
	"github.com/vedamschool/dsahub/internal/app/system/gates"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. DSAHub mounts a JSON API: auth
// endpoints at the root, Google OAuth under /auth/google, and the
// student-facing surfaces under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Profile renames take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// The access gate owns the registration domain allow-list. Both the
	// credential and OAuth signup paths go through it.
	gate := gates.New(appCfg.AllowedDomains, accountstore.New(db), userstore.New(db), logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, gate, sessionMgr, logger)
	loginfeature.MountRoutes(r, loginHandler)

	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	stateStore := oauthstatestore.New(db)
	googleHandler := authgooglefeature.NewHandler(db, gate, sessionMgr, stateStore,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Student-facing API
	dashboardHandler := dashboardfeature.NewHandler(db, logger)
	r.Mount("/api/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	analysisHandler := analysisfeature.NewHandler(db, logger)
	r.Mount("/api/analysis", analysisfeature.Routes(analysisHandler, sessionMgr))

	questionsHandler := questionsfeature.NewHandler(db, logger)
	r.Mount("/api/questions", questionsfeature.Routes(questionsHandler, sessionMgr))
	questionsfeature.MountSolves(r, questionsHandler, sessionMgr)

	leaderboardHandler := leaderboardfeature.NewHandler(db, logger)
	r.Mount("/api/leaderboard", leaderboardfeature.Routes(leaderboardHandler, sessionMgr))

	profileHandler := profilefeature.NewHandler(db, logger)
	r.Mount("/api/profile", profilefeature.Routes(profileHandler, sessionMgr))

	return r, nil
}
