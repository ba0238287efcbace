package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	modelcache "roadwatch.dev/backend/internal/model/cache"
	modelv1 "roadwatch.dev/backend/internal/model/v1"
	"roadwatch.dev/backend/internal/pkg/observability"
	"roadwatch.dev/backend/internal/repo"
)

const statsCacheTTL = time.Minute * 5

type Analytics struct {
	ReportRepo *repo.Report
}

func NewAnalytics(reportRepo *repo.Report) *Analytics {
	return &Analytics{
		ReportRepo: reportRepo,
	}
}

// GetStats returns aggregated report statistics for the trailing day window,
// served from cache when fresh.
func (s *Analytics) GetStats(ctx context.Context, days int) (*modelv1.ReportStats, error) {
	days = clampDays(days)

	var stats modelv1.ReportStats
	calculated, err := modelcache.ReportStats.MutexGetSet(strconv.Itoa(days), &stats, func() (modelv1.ReportStats, error) {
		fresh, err := s.calcStats(ctx, days)
		if err != nil {
			return modelv1.ReportStats{}, err
		}
		return *fresh, nil
	}, statsCacheTTL)
	if err != nil {
		return nil, err
	}
	if calculated {
		log.Debug().
			Str("evt.name", "analytics.stats.calculated").
			Int("days", days).
			Msg("report stats recalculated")
	}

	return &stats, nil
}

// RefreshStats recalculates and re-caches the default window. Called by the
// periodic worker and by the admin refresh endpoint.
func (s *Analytics) RefreshStats(ctx context.Context) error {
	start := time.Now()
	defer func() {
		observability.WorkerCalcDuration.
			WithLabelValues("analytics").
			Set(time.Since(start).Seconds())
	}()

	days := constant.DefaultAnalyticsDays
	stats, err := s.calcStats(ctx, days)
	if err != nil {
		return err
	}
	return modelcache.ReportStats.Set(strconv.Itoa(days), *stats, statsCacheTTL)
}

func (s *Analytics) calcStats(ctx context.Context, days int) (*modelv1.ReportStats, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days+1).Truncate(24 * time.Hour)

	total, err := s.ReportRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	last24h, err := s.ReportRepo.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	byCategory, err := s.ReportRepo.CountsByColumn(ctx, "category", since)
	if err != nil {
		return nil, err
	}
	bySeverity, err := s.ReportRepo.CountsByColumn(ctx, "severity", since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.ReportRepo.CountsByColumn(ctx, "status", since)
	if err != nil {
		return nil, err
	}

	dailyCounts, err := s.ReportRepo.DailyCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	topLocations, err := s.ReportRepo.TopLocations(ctx, since, constant.TopLocationsLimit)
	if err != nil {
		return nil, err
	}

	return &modelv1.ReportStats{
		Total:        total,
		Last24H:      last24h,
		ByCategory:   byCategory,
		BySeverity:   bySeverity,
		ByStatus:     byStatus,
		Daily:        fillDailySeries(dailyCounts, since, now),
		TopLocations: topNLocations(topLocations, constant.TopLocationsLimit),
		GeneratedAt:  now,
	}, nil
}

// fillDailySeries expands a sparse day->count map into a continuous series
// from since to until, inclusive, with zeroes for missing days.
func fillDailySeries(counts map[string]int, since, until time.Time) []modelv1.DailyBucket {
	sinceDay := since.UTC().Truncate(24 * time.Hour)
	untilDay := until.UTC().Truncate(24 * time.Hour)

	buckets := make([]modelv1.DailyBucket, 0, int(untilDay.Sub(sinceDay).Hours()/24)+1)
	for day := sinceDay; !day.After(untilDay); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		buckets = append(buckets, modelv1.DailyBucket{
			Date:  date,
			Count: counts[date],
		})
	}
	return buckets
}

// topNLocations collapses duplicate normalized locations and returns the n
// largest counts. The repo already normalizes; this guards merged windows.
func topNLocations(counts []*model.LocationCount, n int) []*model.LocationCount {
	grouped := lo.GroupBy(counts, func(c *model.LocationCount) string {
		return c.Location
	})
	merged := lo.MapToSlice(grouped, func(location string, group []*model.LocationCount) *model.LocationCount {
		return &model.LocationCount{
			Location: location,
			Count: lo.SumBy(group, func(c *model.LocationCount) int {
				return c.Count
			}),
		}
	})
	sorted := lo.Filter(merged, func(c *model.LocationCount, _ int) bool {
		return c.Location != ""
	})
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Location < sorted[j].Location
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func clampDays(days int) int {
	if days <= 0 {
		return constant.DefaultAnalyticsDays
	}
	if days > constant.MaxAnalyticsDays {
		return constant.MaxAnalyticsDays
	}
	return days
}
