package cli

import (
	"context"

	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/app/appcontext"
	"roadwatch.dev/backend/internal/app/appentry"
)

// Start builds the application graph in CLI mode and populates the
// requested dependencies without binding the HTTP listener.
func Start(module fx.Option) error {
	opts := appentry.ProvideOptions(appcontext.EnvCLI)
	opts = append(opts, module)

	return fx.New(opts...).Start(context.Background())
}
