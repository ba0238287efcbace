package reportverifs

import (
	"context"
	"time"

	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/pkg/observability"
)

type Verifier interface {
	Name() string
	Verify(ctx context.Context, report *types.CreateReportRequest) *Rejection
}

type ReportVerifiers []Verifier

func NewReportVerifier(contentVerifier *ContentVerifier, dupVerifier *DupVerifier, rejectRuleVerifier *RejectRuleVerifier) *ReportVerifiers {
	return &ReportVerifiers{
		contentVerifier,
		dupVerifier,
		rejectRuleVerifier,
	}
}

// Verify runs the report through each verifier in order and returns the first
// violation, or nil when the report passes all of them.
func (verifiers ReportVerifiers) Verify(ctx context.Context, report *types.CreateReportRequest) *Violation {
	for _, pipe := range verifiers {
		start := time.Now()

		name := pipe.Name()

		rejection := pipe.Verify(ctx, report)

		observability.ReportVerifyDuration.
			WithLabelValues(name).
			Observe(time.Since(start).Seconds())

		if rejection != nil {
			return &Violation{
				Name:      name,
				Rejection: *rejection,
			}
		}
	}

	return nil
}
