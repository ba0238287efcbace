package controller

import (
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/controller/meta"
	v1 "roadwatch.dev/backend/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Options(
		v1.Module(),
		meta.Module(),
	)
}
