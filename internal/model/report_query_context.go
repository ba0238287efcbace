package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// ReportQueryContext carries the filtering, ordering and pagination of a
// report listing query through the repo layer.
type ReportQueryContext struct {
	Category null.String `json:"category"`
	Severity null.String `json:"severity"`
	Status   null.String `json:"status"`

	// Search matches case-insensitively against title, description and location.
	Search null.String `json:"search"`

	Since *time.Time `json:"since"`
	Until *time.Time `json:"until"`

	SortBy   string `json:"sortBy"`
	SortDesc bool   `json:"sortDesc"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (queryCtx *ReportQueryContext) HasTimeRange() bool {
	return queryCtx.Since != nil || queryCtx.Until != nil
}
