package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"roadwatch.dev/backend/cmd/app/cli/archive"
	"roadwatch.dev/backend/cmd/app/server"
	"roadwatch.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "rwbackend",
		Description: "The RoadWatch community road incident reporting backend. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as cache and state synchronization.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			archive.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
