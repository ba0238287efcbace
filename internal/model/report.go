package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Report struct {
	bun.BaseModel `bun:"reports,alias:r"`

	ReportID    string      `bun:",pk" json:"id"`
	Title       string      `json:"title"`
	Description null.String `bun:",nullzero" json:"description,omitempty" swaggertype:"string"`
	Location    string      `json:"location"`
	Latitude    null.Float  `bun:",nullzero" json:"latitude,omitempty" swaggertype:"number"`
	Longitude   null.Float  `bun:",nullzero" json:"longitude,omitempty" swaggertype:"number"`
	Category    string      `json:"category"`
	Severity    string      `json:"severity"`
	Status      string      `json:"status"`

	ReporterName  null.String `bun:",nullzero" json:"reporterName,omitempty" swaggertype:"string"`
	ReporterEmail null.String `bun:",nullzero" json:"reporterEmail,omitempty" swaggertype:"string"`

	// Reliability is 0 for reports that passed verification and negative for
	// quarantined ones. Quarantined rows never surface on public reads.
	Reliability int `json:"-"`

	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}
