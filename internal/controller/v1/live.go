package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"roadwatch.dev/backend/internal/server/svr"
	"roadwatch.dev/backend/internal/service"
)

const (
	liveWriteTimeout = time.Second * 10
	livePingInterval = time.Second * 30
)

type Live struct {
	fx.In

	LiveService *service.Live
}

func RegisterLive(v1 *svr.V1, c Live) {
	v1.Get("/live", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	}, c.Live())
}

// Live streams report events to the client as JSON text frames. Each
// connection gets its own subscriber, so concurrent clients never share state.
func (c *Live) Live() func(ctx *fiber.Ctx) error {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		id, events := c.LiveService.Subscribe()
		defer c.LiveService.Unsubscribe(id)

		// reader loop: we never expect client messages, but reading is the only
		// way to notice the peer going away
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(livePingInterval)
		defer ticker.Stop()

		for {
			select {
			case payload, ok := <-events:
				if !ok {
					// dropped by the hub for falling behind
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "client too slow"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					if l := log.Trace(); l.Enabled() {
						l.Err(err).Str("subscriberId", id).Msg("live write failed, closing connection")
					}
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}, websocket.Config{
		Subprotocols:      []string{"v1.roadwatch.live+json"},
		EnableCompression: true,
	})
}
