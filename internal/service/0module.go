package service

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewLive,
		NewHealth,
		NewReport,
		NewGeocode,
		NewArchive,
		NewAnalytics,
	))
}
