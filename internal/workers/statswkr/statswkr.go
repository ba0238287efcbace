package statswkr

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	AnalyticsService *service.Analytics
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// heartbeatURL is pinged after each successful batch, when set
	heartbeatURL string

	client *resty.Client

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("analytics worker is disabled")
		return
	}
	(&Worker{
		interval:     conf.WorkerInterval,
		heartbeatURL: conf.WorkerHeartbeatURL,
		client:       resty.New().SetTimeout(time.Second * 10),
		WorkerDeps:   deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("analytics worker batch started")

			if err := w.AnalyticsService.RefreshStats(ctx); err != nil {
				log.Error().
					Err(err).
					Int("count", w.count).
					Msg("analytics worker batch failed")
			} else {
				log.Info().Int("count", w.count).Msg("analytics worker batch finished")
				w.heartbeat(ctx)
			}

			w.count++

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

func (w *Worker) heartbeat(ctx context.Context) {
	if w.heartbeatURL == "" {
		return
	}
	if _, err := w.client.R().SetContext(ctx).Get(w.heartbeatURL); err != nil {
		// only log the error, heartbeats are best-effort
		log.Warn().Err(err).Msg("analytics worker heartbeat failed")
	}
}

func (w *Worker) Count() int {
	return w.count
}
