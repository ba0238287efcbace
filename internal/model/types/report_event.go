package types

import (
	"time"

	"roadwatch.dev/backend/internal/model"
)

// ReportEvent is the payload published to the message bus and fanned out to
// live subscribers whenever a report changes.
type ReportEvent struct {
	EventID   string        `json:"eventId"`
	Op        string        `json:"op"`
	Report    *model.Report `json:"report"`
	EmittedAt time.Time     `json:"emittedAt"`
}
