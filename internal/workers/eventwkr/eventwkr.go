package eventwkr

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	NatsJS      nats.JetStreamContext
	LiveService *service.Live
}

// Worker forwards report events from the message bus into the in-process
// live hub. All instances join one queue group so each event is fanned out
// to connected clients exactly once per instance group.
type Worker struct {
	WorkerDeps
}

func Start(deps WorkerDeps) {
	ch := make(chan error)
	// handle & dump errors from workers
	go func() {
		for {
			err := <-ch
			if err != nil {
				log.Error().Err(err).Msg("event worker error")
			}
		}
	}()

	worker := &Worker{
		WorkerDeps: deps,
	}
	go func() {
		if err := worker.Consumer(context.Background(), ch); err != nil {
			ch <- err
		}
	}()
}

func (w *Worker) Consumer(ctx context.Context, ch chan error) error {
	msgChan := make(chan *nats.Msg, 16)

	_, err := w.NatsJS.ChanQueueSubscribe(constant.LiveSubjectPrefix+"*", constant.LiveQueueGroup, msgChan, nats.AckWait(time.Second*10), nats.MaxAckPending(128))
	if err != nil {
		log.Err(err).Msgf("failed to subscribe to %s*", constant.LiveSubjectPrefix)
		return err
	}

	for {
		select {
		case msg := <-msgChan:
			w.LiveService.Broadcast(msg.Data)

			if err := msg.Ack(); err != nil {
				ch <- err
			}

			if l := log.Trace(); l.Enabled() {
				l.Str("subject", msg.Subject).
					Int("subscribers", w.LiveService.SubscriberCount()).
					Msg("report event forwarded to live hub")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
