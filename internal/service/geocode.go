package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"roadwatch.dev/backend/internal/app/appconfig"
	modelcache "roadwatch.dev/backend/internal/model/cache"
	"roadwatch.dev/backend/internal/pkg/cache"
	"roadwatch.dev/backend/internal/pkg/observability"
)

var ErrGeocodeUnavailable = errors.New("reverse geocoding unavailable")

// Geocode resolves coordinates into human-readable place names through a
// Nominatim instance. Results are cached aggressively: place names for a
// rounded coordinate effectively never change.
type Geocode struct {
	Conf   *appconfig.Config
	client *resty.Client
}

func NewGeocode(conf *appconfig.Config) *Geocode {
	client := resty.New().
		SetBaseURL(conf.NominatimBaseURL).
		SetTimeout(conf.GeocodeTimeout).
		SetHeader("User-Agent", conf.NominatimUserAgent)

	return &Geocode{
		Conf:   conf,
		client: client,
	}
}

// Reverse resolves the coordinate to a display name. It falls back to a
// "lat, lng" rendering when the lookup fails, so submissions never block on
// the geocoder.
func (s *Geocode) Reverse(ctx context.Context, lat, lng float64) string {
	name, err := s.reverse(ctx, lat, lng)
	if err != nil {
		log.Warn().
			Str("evt.name", "geocode.reverse.failed").
			Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("reverse geocoding failed, falling back to raw coordinates")
		return CoordinateLabel(lat, lng)
	}
	return name
}

func (s *Geocode) reverse(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)

	var cached string
	if err := modelcache.Geocode.Get(key, &cached); err == nil {
		observability.GeocodeRequests.WithLabelValues("cache_hit").Inc()
		return cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Warn().Err(err).Msg("failed to get geocode result from cache")
	}

	name, err := retry.DoWithData(func() (string, error) {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"format": "jsonv2",
				"lat":    fmt.Sprintf("%f", lat),
				"lon":    fmt.Sprintf("%f", lng),
			}).
			Get("/reverse")
		if err != nil {
			return "", err
		}
		if resp.IsError() {
			return "", errors.Wrapf(ErrGeocodeUnavailable, "nominatim returned status %d", resp.StatusCode())
		}
		displayName := gjson.GetBytes(resp.Body(), "display_name").String()
		if strings.TrimSpace(displayName) == "" {
			return "", errors.Wrap(ErrGeocodeUnavailable, "nominatim returned an empty display name")
		}
		return displayName, nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		observability.GeocodeRequests.WithLabelValues("error").Inc()
		return "", err
	}

	observability.GeocodeRequests.WithLabelValues("ok").Inc()

	if err := modelcache.Geocode.Set(key, name, 0); err != nil {
		log.Warn().Err(err).Msg("failed to cache geocode result")
	}

	return name, nil
}

// CoordinateLabel renders a coordinate pair the way it is shown when no
// place name is available.
func CoordinateLabel(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
