package server

import (
	"github.com/urfave/cli/v2"

	"roadwatch.dev/backend/cmd/service"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "start server",
		Action: func(c *cli.Context) error {
			service.Bootstrap()
			return nil
		},
	}
}
