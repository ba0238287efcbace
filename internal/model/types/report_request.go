package types

import (
	"gopkg.in/guregu/null.v3"
)

type CreateReportRequest struct {
	Title       string      `json:"title" validate:"required,min=3,max=200" example:"Pothole on Main St"`
	Description null.String `json:"description" validate:"omitempty,max=2000" swaggertype:"string"`
	Location    null.String `json:"location" validate:"omitempty,max=200" swaggertype:"string" example:"Main St & 5th Ave"`
	Latitude    null.Float  `json:"latitude" validate:"omitempty,min=-90,max=90" swaggertype:"number" example:"52.5200"`
	Longitude   null.Float  `json:"longitude" validate:"omitempty,min=-180,max=180" swaggertype:"number" example:"13.4050"`
	Category    string      `json:"category" validate:"required,reportcategory" example:"road_damage"`
	Severity    string      `json:"severity" validate:"required,reportseverity" example:"medium"`

	ReporterName  null.String `json:"reporterName" validate:"omitempty,max=100" swaggertype:"string"`
	ReporterEmail null.String `json:"reporterEmail" validate:"omitempty,email" swaggertype:"string"`
}

type UpdateReportStatusRequest struct {
	// Action is one of resolve, verify, reactivate.
	Action string `json:"action" validate:"required,caseinsensitiveoneof=resolve verify reactivate" example:"resolve"`
}

type ReportFilterRequest struct {
	Category string `query:"category" validate:"omitempty,reportcategory"`
	Severity string `query:"severity" validate:"omitempty,reportseverity"`
	Status   string `query:"status" validate:"omitempty,reportstatus"`
	Search   string `query:"search" validate:"omitempty,max=200"`

	// Since and Until are RFC 3339 timestamps bounding createdAt.
	Since string `query:"since" validate:"omitempty"`
	Until string `query:"until" validate:"omitempty"`

	SortBy   string `query:"sortBy" validate:"omitempty,caseinsensitiveoneof=createdAt severity"`
	SortDesc bool   `query:"sortDesc"`

	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type NearbyRequest struct {
	Latitude  float64 `query:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `query:"longitude" validate:"required,min=-180,max=180"`
	RadiusKm  float64 `query:"radiusKm" validate:"omitempty,gt=0,max=500"`
	Limit     int     `query:"limit" validate:"omitempty,min=1,max=200"`
}

type ClustersRequest struct {
	Zoom int `query:"zoom" validate:"omitempty,min=1,max=18"`
}

type AnalyticsRequest struct {
	Days int `query:"days" validate:"omitempty,min=1,max=365"`
}
