package service

import (
	"sync"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"

	"roadwatch.dev/backend/internal/pkg/observability"
)

const subscriberBufferSize = 64

// Live is the in-process fan-out hub for report events. Every websocket
// connection registers exactly one subscriber with a unique id, so two
// clients watching the same stream never collide on a shared channel.
type Live struct {
	mu          sync.RWMutex
	subscribers map[string]chan []byte
}

func NewLive() *Live {
	return &Live{
		subscribers: make(map[string]chan []byte),
	}
}

// Subscribe registers a new subscriber and returns its id together with the
// channel events will arrive on. The channel is closed on Unsubscribe or when
// the subscriber falls too far behind.
func (s *Live) Subscribe() (string, <-chan []byte) {
	id := uniuri.NewLen(32)
	ch := make(chan []byte, subscriberBufferSize)

	s.mu.Lock()
	s.subscribers[id] = ch
	s.mu.Unlock()

	observability.LiveConnections.Inc()

	if l := log.Trace(); l.Enabled() {
		l.Str("evt.name", "live.subscribe").
			Str("subscriberId", id).
			Msg("live subscriber registered")
	}

	return id, ch
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call for
// an id that was already dropped.
func (s *Live) Unsubscribe(id string) {
	s.mu.Lock()
	ch, ok := s.subscribers[id]
	if ok {
		delete(s.subscribers, id)
	}
	s.mu.Unlock()

	if ok {
		close(ch)
		observability.LiveConnections.Dec()
	}
}

// Broadcast delivers the payload to every subscriber. A subscriber whose
// buffer is full is dropped rather than allowed to stall the rest.
func (s *Live) Broadcast(payload []byte) {
	var stalled []string

	s.mu.RLock()
	for id, ch := range s.subscribers {
		select {
		case ch <- payload:
		default:
			stalled = append(stalled, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range stalled {
		log.Warn().
			Str("evt.name", "live.drop_slow_client").
			Str("subscriberId", id).
			Msg("dropping live subscriber that cannot keep up")
		s.Unsubscribe(id)
		observability.LiveDroppedClients.Inc()
	}
}

// SubscriberCount reports the number of currently registered subscribers.
func (s *Live) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
