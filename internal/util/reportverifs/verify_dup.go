package reportverifs

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"roadwatch.dev/backend/internal/app/appconfig"
	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model/types"
)

var ErrDuplicateReport = errors.New("an identical report was submitted moments ago")

type DupVerifier struct {
	Redis *redis.Client
	Conf  *appconfig.Config
}

// ensure DupVerifier conforms to Verifier
var _ Verifier = (*DupVerifier)(nil)

func NewDupVerifier(client *redis.Client, conf *appconfig.Config) *DupVerifier {
	return &DupVerifier{
		Redis: client,
		Conf:  conf,
	}
}

func (v *DupVerifier) Name() string {
	return "dup"
}

// Fingerprint hashes the fields a resubmission would repeat verbatim.
// Coordinates are rounded so that GPS jitter does not defeat the check.
func Fingerprint(report *types.CreateReportRequest) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(report.Title)))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(strings.TrimSpace(report.Location.String)))
	b.WriteByte('|')
	b.WriteString(report.Category)
	if report.Latitude.Valid && report.Longitude.Valid {
		fmt.Fprintf(&b, "|%.4f,%.4f", report.Latitude.Float64, report.Longitude.Float64)
	}

	return fmt.Sprintf("%016x", xxh3.HashString(b.String()))
}

func (v *DupVerifier) Verify(ctx context.Context, report *types.CreateReportRequest) *Rejection {
	key := "dedup:report:" + Fingerprint(report)

	set, err := v.Redis.SetNX(ctx, key, 1, v.Conf.DedupWindow).Result()
	if err != nil {
		// dedup is best-effort, a redis hiccup must not block submissions
		log.Error().
			Str("evt.name", "verifier.dup.redis_error").
			Err(err).
			Msg("failed to check duplicate fingerprint")
		return nil
	}

	if !set {
		return &Rejection{
			Reliability: constant.ViolationReliabilityDuplicate,
			Message:     ErrDuplicateReport.Error(),
		}
	}

	return nil
}
