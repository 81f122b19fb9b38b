// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	oauthstatestore "github.com/vedamschool/dsahub/internal/app/store/oauthstate"
	"github.com/vedamschool/dsahub/internal/app/system/workers"
)

// stateCleanup runs for the life of the process; Shutdown stops it.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("dsahub starting",
		zap.Strings("allowed_domains", appCfg.AllowedDomains),
		zap.Bool("google_oauth", appCfg.GoogleClientID != ""))

	stateCleanup = workers.NewStateCleanup(oauthstatestore.New(deps.MongoDatabase), logger, time.Hour)
	stateCleanup.Start()
	return nil
}
