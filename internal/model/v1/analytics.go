package v1

import (
	"time"

	"roadwatch.dev/backend/internal/model"
)

type DailyBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ReportStats struct {
	Total   int `json:"total"`
	Last24H int `json:"last24h"`

	ByCategory map[string]int `json:"byCategory"`
	BySeverity map[string]int `json:"bySeverity"`
	ByStatus   map[string]int `json:"byStatus"`

	Daily        []DailyBucket          `json:"daily"`
	TopLocations []*model.LocationCount `json:"topLocations"`

	GeneratedAt time.Time `json:"generatedAt"`
}
