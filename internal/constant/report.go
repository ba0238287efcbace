package constant

// Report categories. Mirrors the check constraint on reports.category.
const (
	CategoryAccident     = "accident"
	CategoryConstruction = "construction"
	CategoryWeather      = "weather"
	CategoryTraffic      = "traffic"
	CategoryRoadDamage   = "road_damage"
	CategoryOther        = "other"
)

// Report severities. Mirrors the check constraint on reports.severity.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Report statuses. A report is never hard-deleted: deletion flips the
// status to StatusResolved.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
	StatusVerified = "verified"
)

var (
	CategoryMap = map[string]struct{}{
		CategoryAccident:     {},
		CategoryConstruction: {},
		CategoryWeather:      {},
		CategoryTraffic:      {},
		CategoryRoadDamage:   {},
		CategoryOther:        {},
	}

	SeverityMap = map[string]struct{}{
		SeverityLow:      {},
		SeverityMedium:   {},
		SeverityHigh:     {},
		SeverityCritical: {},
	}

	StatusMap = map[string]struct{}{
		StatusActive:   {},
		StatusResolved: {},
		StatusVerified: {},
	}

	// SeverityRank orders severities for sorting. Higher is worse.
	SeverityRank = map[string]int{
		SeverityLow:      0,
		SeverityMedium:   1,
		SeverityHigh:     2,
		SeverityCritical: 3,
	}
)

// Reliability values. 0 means the report passed all verifiers and is
// publicly visible. Negative values quarantine the report from all
// public reads while keeping the row for moderation.
const (
	ReliabilityOK = 0

	ViolationReliabilityDuplicate = -2
	ViolationReliabilityContent   = -3

	// ViolationReliabilityRejectRuleUnexpected marks submissions quarantined
	// because rule evaluation itself failed.
	ViolationReliabilityRejectRuleUnexpected = -4

	// Reject rules carry their own reliability which must fall in
	// [ViolationReliabilityRejectRuleRangeLeast, ViolationReliabilityRejectRuleRangeMost).
	ViolationReliabilityRejectRuleRangeLeast = -99
	ViolationReliabilityRejectRuleRangeMost  = -9
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	MaxNearbyRadiusKm = 500

	MinClusterZoom = 1
	MaxClusterZoom = 18

	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 365

	TopLocationsLimit = 10
)
