package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roadwatch.dev/backend/internal/app/appconfig"
	modelcache "roadwatch.dev/backend/internal/model/cache"
)

func newGeocodeService(t *testing.T, handler http.Handler) (*Geocode, *httptest.Server) {
	t.Helper()

	// no redis in unit tests, the geocode cache degrades to a no-op
	modelcache.Initialize(nil)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			NominatimBaseURL:   server.URL,
			NominatimUserAgent: "roadwatch-backend-test",
			GeocodeTimeout:     time.Second,
		},
	}
	return NewGeocode(conf), server
}

func TestGeocodeReverse(t *testing.T) {
	svc, _ := newGeocodeService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		assert.Equal(t, "roadwatch-backend-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "Unter den Linden, Mitte, Berlin, Germany"}`))
	}))

	name := svc.Reverse(context.Background(), 52.517, 13.389)
	assert.Equal(t, "Unter den Linden, Mitte, Berlin, Germany", name)
}

func TestGeocodeReverseFallsBackToCoordinates(t *testing.T) {
	svc, _ := newGeocodeService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	name := svc.Reverse(context.Background(), 52.517, 13.389)
	assert.Equal(t, "52.5170, 13.3890", name)
}

func TestGeocodeReverseRetriesTransientFailures(t *testing.T) {
	var calls int32
	svc, _ := newGeocodeService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "Main St"}`))
	}))

	name := svc.Reverse(context.Background(), 1, 2)
	assert.Equal(t, "Main St", name)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGeocodeReverseEmptyDisplayName(t *testing.T) {
	svc, _ := newGeocodeService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": ""}`))
	}))

	name := svc.Reverse(context.Background(), -12.05, -77.03)
	assert.Equal(t, "-12.0500, -77.0300", name)
}

func TestCoordinateLabel(t *testing.T) {
	assert.Equal(t, "52.5200, 13.4050", CoordinateLabel(52.52, 13.405))
	assert.Equal(t, "0.0000, 0.0000", CoordinateLabel(0, 0))
}
