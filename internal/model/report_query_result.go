package model

// LocationCount is a grouped count of reports sharing a normalized location.
type LocationCount struct {
	Location string `bun:"location" json:"location"`
	Count    int    `bun:"count" json:"count"`
}
