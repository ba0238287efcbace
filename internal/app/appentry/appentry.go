package appentry

import (
	"time"

	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/app/appcontext"
	"roadwatch.dev/backend/internal/controller"
	"roadwatch.dev/backend/internal/infra"
	"roadwatch.dev/backend/internal/model/cache"
	"roadwatch.dev/backend/internal/pkg/logger"
	"roadwatch.dev/backend/internal/repo"
	"roadwatch.dev/backend/internal/server/httpserver"
	"roadwatch.dev/backend/internal/server/svr"
	"roadwatch.dev/backend/internal/service"
	"roadwatch.dev/backend/internal/util/reportverifs"
	"roadwatch.dev/backend/internal/workers/eventwkr"
	"roadwatch.dev/backend/internal/workers/statswkr"
)

func ProvideOptions(env appcontext.Env) []fx.Option {
	opts := []fx.Option{
		// Misc
		fx.Supply(appcontext.Declare(env)),
		fx.Provide(appconfig.Parse),
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups),

		// Infrastructures
		infra.Module(),

		// Verifiers
		reportverifs.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(logger.Configure),
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),
		fx.WithLogger(logger.Fx),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(statswkr.Start),
		fx.Invoke(eventwkr.Start),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return opts
}
