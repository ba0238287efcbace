package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/util/rekuest"
)

func TestNearbyRequestRequiresCoordinates(t *testing.T) {
	t.Run("both coordinates missing", func(t *testing.T) {
		assert.Error(t, rekuest.ValidStruct(&types.NearbyRequest{}))
	})

	t.Run("longitude missing", func(t *testing.T) {
		assert.Error(t, rekuest.ValidStruct(&types.NearbyRequest{Latitude: 52.52}))
	})

	t.Run("latitude missing", func(t *testing.T) {
		assert.Error(t, rekuest.ValidStruct(&types.NearbyRequest{Longitude: 13.405}))
	})

	t.Run("both present", func(t *testing.T) {
		assert.NoError(t, rekuest.ValidStruct(&types.NearbyRequest{Latitude: 52.52, Longitude: 13.405}))
	})

	t.Run("latitude out of range", func(t *testing.T) {
		assert.Error(t, rekuest.ValidStruct(&types.NearbyRequest{Latitude: 91, Longitude: 13.405}))
	})
}
