package reportverifs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model/types"
)

func TestContentVerifier(t *testing.T) {
	verifier := NewContentVerifier()

	located := func(req types.CreateReportRequest) *types.CreateReportRequest {
		req.Location = null.StringFrom("Main St")
		return &req
	}

	tests := []struct {
		name     string
		report   *types.CreateReportRequest
		rejected bool
	}{
		{
			name:     "valid report",
			report:   located(types.CreateReportRequest{Title: "Pothole near the crossing"}),
			rejected: false,
		},
		{
			name:     "blank title",
			report:   located(types.CreateReportRequest{Title: "   "}),
			rejected: true,
		},
		{
			name:     "repeated character title",
			report:   located(types.CreateReportRequest{Title: "aaaaaaaa"}),
			rejected: true,
		},
		{
			name:     "short title is not considered spam",
			report:   located(types.CreateReportRequest{Title: "A1"}),
			rejected: false,
		},
		{
			name:     "no location and no coordinates",
			report:   &types.CreateReportRequest{Title: "Pothole"},
			rejected: true,
		},
		{
			name: "coordinates without location name",
			report: &types.CreateReportRequest{
				Title:     "Pothole",
				Latitude:  null.FloatFrom(52.52),
				Longitude: null.FloatFrom(13.405),
			},
			rejected: false,
		},
		{
			name: "latitude without longitude",
			report: located(types.CreateReportRequest{
				Title:    "Pothole",
				Latitude: null.FloatFrom(52.52),
			}),
			rejected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rejection := verifier.Verify(context.Background(), tt.report)
			if tt.rejected {
				assert.NotNil(t, rejection)
				assert.Equal(t, constant.ViolationReliabilityContent, rejection.Reliability)
			} else {
				assert.Nil(t, rejection)
			}
		})
	}
}
