package constant

import "time"

const (
	RequestIDHeader = "X-RoadWatch-Request-ID"

	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyHeader    = "X-RoadWatch-Idempotency"

	IdempotencyKeyLocalsKey = "idempotency-key"
	LocalsRequestIDKey      = "request-id"

	IdempotencyKeyLengthLimit = 128

	ReportIdempotencyLifetime    = time.Hour * 24
	ReportIdempotencyRedisPrefix = "idempotency:report"
)

const (
	// LiveSubjectPrefix is the NATS subject prefix for report change events.
	LiveSubjectPrefix = "REPORT."

	SubjectReportInserted = "REPORT.INSERTED"
	SubjectReportUpdated  = "REPORT.UPDATED"
	SubjectReportResolved = "REPORT.RESOLVED"

	LiveQueueGroup = "roadwatch-live"
	LiveStreamName = "roadwatch-reports"
)
