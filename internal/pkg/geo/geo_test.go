package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 48.8566, lng2: 2.3522,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lng1: 2.3522,
			lat2: 51.5074, lng2: -0.1278,
			expected:  343.5,
			tolerance: 2,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			expected:  3935,
			tolerance: 15,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.5,
			lat2: 0, lng2: -179.5,
			expected:  111.2,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestBoundingBox(t *testing.T) {
	t.Run("center point stays inside", func(t *testing.T) {
		box := BoundingBox(52.52, 13.405, 10)
		assert.True(t, box.Contains(52.52, 13.405))
	})

	t.Run("encloses the circle", func(t *testing.T) {
		lat, lng := 52.52, 13.405
		box := BoundingBox(lat, lng, 10)

		// points just inside the radius must be inside the box
		assert.True(t, box.Contains(lat+0.089, lng)) // ~9.9km north
		assert.True(t, box.Contains(lat, lng+0.146)) // ~9.9km east

		// points far outside must be excluded
		assert.False(t, box.Contains(lat+1, lng))
		assert.False(t, box.Contains(lat, lng+1))
	})

	t.Run("wraps the antimeridian", func(t *testing.T) {
		box := BoundingBox(0, 179.9, 50)
		assert.True(t, box.MinLng > box.MaxLng)
		assert.True(t, box.Contains(0, 179.95))
		assert.True(t, box.Contains(0, -179.95))
		assert.False(t, box.Contains(0, 0))
	})

	t.Run("clamps latitude at the pole", func(t *testing.T) {
		box := BoundingBox(89.9, 0, 100)
		assert.Equal(t, 90.0, box.MaxLat)
		assert.True(t, box.Contains(89.95, 170))
	})
}

func TestGridCluster(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GridCluster(nil, 10))
	})

	t.Run("nearby points merge at low zoom", func(t *testing.T) {
		points := []Point{
			{ID: "a", Lat: 52.50, Lng: 13.40},
			{ID: "b", Lat: 52.52, Lng: 13.42},
			{ID: "c", Lat: -33.86, Lng: 151.21},
		}
		clusters := GridCluster(points, 5)
		assert.Len(t, clusters, 2)

		var berlin Cluster
		for _, c := range clusters {
			if c.Count == 2 {
				berlin = c
			}
		}
		assert.Equal(t, 2, berlin.Count)
		assert.InDelta(t, 52.51, berlin.Lat, 0.001)
		assert.InDelta(t, 13.41, berlin.Lng, 0.001)
		assert.ElementsMatch(t, []string{"a", "b"}, berlin.IDs)
	})

	t.Run("points split at high zoom", func(t *testing.T) {
		points := []Point{
			{ID: "a", Lat: 52.50, Lng: 13.40},
			{ID: "b", Lat: 52.52, Lng: 13.42},
		}
		clusters := GridCluster(points, 18)
		assert.Len(t, clusters, 2)
		for _, c := range clusters {
			assert.Equal(t, 1, c.Count)
		}
	})
}
