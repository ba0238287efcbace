package reportverifs

import (
	"context"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model/types"
)

var (
	ErrBlankTitle      = errors.New("title is blank")
	ErrRepeatedTitle   = errors.New("title is a single repeated character")
	ErrMissingLocation = errors.New("report has neither a location name nor coordinates")
	ErrPartialCoords   = errors.New("latitude and longitude must be provided together")
)

type ContentVerifier struct{}

// ensure ContentVerifier conforms to Verifier
var _ Verifier = (*ContentVerifier)(nil)

func NewContentVerifier() *ContentVerifier {
	return &ContentVerifier{}
}

func (v *ContentVerifier) Name() string {
	return "content"
}

func (v *ContentVerifier) Verify(ctx context.Context, report *types.CreateReportRequest) *Rejection {
	if err := v.verify(report); err != nil {
		return &Rejection{
			Reliability: constant.ViolationReliabilityContent,
			Message:     err.Error(),
		}
	}
	return nil
}

func (v *ContentVerifier) verify(report *types.CreateReportRequest) error {
	title := strings.TrimSpace(report.Title)
	if title == "" {
		return ErrBlankTitle
	}
	if isRepeatedRune(title) {
		return ErrRepeatedTitle
	}

	hasLocation := strings.TrimSpace(report.Location.String) != ""
	hasCoords := report.Latitude.Valid && report.Longitude.Valid
	if report.Latitude.Valid != report.Longitude.Valid {
		return ErrPartialCoords
	}
	if !hasLocation && !hasCoords {
		return ErrMissingLocation
	}

	return nil
}

func isRepeatedRune(s string) bool {
	var first rune
	count := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if count == 0 {
			first = r
		} else if r != first {
			return false
		}
		count++
	}
	return count >= 3
}
