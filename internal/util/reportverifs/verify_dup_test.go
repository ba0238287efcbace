package reportverifs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/model/types"
)

func TestFingerprint(t *testing.T) {
	base := func() *types.CreateReportRequest {
		return &types.CreateReportRequest{
			Title:     "Pothole on Main St",
			Location:  null.StringFrom("Main St & 5th Ave"),
			Category:  "road_damage",
			Latitude:  null.FloatFrom(52.52),
			Longitude: null.FloatFrom(13.405),
		}
	}

	t.Run("stable", func(t *testing.T) {
		assert.Equal(t, Fingerprint(base()), Fingerprint(base()))
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		other := base()
		other.Title = "  POTHOLE on Main St "
		assert.Equal(t, Fingerprint(base()), Fingerprint(other))
	})

	t.Run("gps jitter below rounding precision", func(t *testing.T) {
		other := base()
		other.Latitude = null.FloatFrom(52.52002)
		assert.Equal(t, Fingerprint(base()), Fingerprint(other))
	})

	t.Run("different title", func(t *testing.T) {
		other := base()
		other.Title = "Fallen tree on Main St"
		assert.NotEqual(t, Fingerprint(base()), Fingerprint(other))
	})

	t.Run("different category", func(t *testing.T) {
		other := base()
		other.Category = "weather"
		assert.NotEqual(t, Fingerprint(base()), Fingerprint(other))
	})

	t.Run("moved coordinates", func(t *testing.T) {
		other := base()
		other.Latitude = null.FloatFrom(52.53)
		assert.NotEqual(t, Fingerprint(base()), Fingerprint(other))
	})
}
