package archive

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "roadwatch.dev/backend/cmd/app/cli"
	"roadwatch.dev/backend/internal/service"
)

type commandDeps struct {
	fx.In

	ArchiveService *service.Archive
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "archive",
		Description: "archive resolved reports created before a date to S3",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "before",
				Usage: "cutoff date in YYYY-MM-DD (UTC); defaults to today",
			},
		},
		Action: func(ctx *cli.Context) error {
			var deps commandDeps
			if err := cliapp.Start(fx.Populate(&deps)); err != nil {
				return errors.Wrap(err, "failed to start application")
			}
			return run(ctx, deps)
		},
	}
}

func run(ctx *cli.Context, deps commandDeps) error {
	before := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr := ctx.String("before"); dateStr != "" {
		var err error
		before, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return errors.Wrap(err, "failed to parse date")
		}
	}

	log.Info().Str("before", before.Format("2006-01-02")).Msg("running archive")

	if err := deps.ArchiveService.ArchiveResolvedBefore(ctx.Context, before); err != nil {
		return errors.Wrap(err, "failed to archive reports")
	}

	log.Info().Msg("archive finished")

	return nil
}
