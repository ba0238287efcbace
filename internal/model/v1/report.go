package v1

import (
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/pkg/geo"
)

type ReportList struct {
	Total int             `json:"total"`
	Items []*model.Report `json:"items"`
}

type ReportWithDistance struct {
	*model.Report

	DistanceKm float64 `json:"distanceKm"`
}

type NearbyReports struct {
	Center   Coordinate            `json:"center"`
	RadiusKm float64               `json:"radiusKm"`
	Items    []*ReportWithDistance `json:"items"`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ReportClusters struct {
	Zoom     int           `json:"zoom"`
	Clusters []geo.Cluster `json:"clusters"`
}
