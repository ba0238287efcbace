package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roadwatch.dev/backend/internal/model"
)

func TestFillDailySeries(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 8, 5, 13, 30, 0, 0, time.UTC)

	buckets := fillDailySeries(map[string]int{
		"2026-08-01": 3,
		"2026-08-04": 1,
	}, since, until)

	assert.Len(t, buckets, 5)
	assert.Equal(t, "2026-08-01", buckets[0].Date)
	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, 0, buckets[1].Count)
	assert.Equal(t, 0, buckets[2].Count)
	assert.Equal(t, 1, buckets[3].Count)
	assert.Equal(t, "2026-08-05", buckets[4].Date)
	assert.Equal(t, 0, buckets[4].Count)
}

func TestFillDailySeriesSingleDay(t *testing.T) {
	day := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	buckets := fillDailySeries(map[string]int{"2026-08-26": 7}, day, day)

	assert.Len(t, buckets, 1)
	assert.Equal(t, 7, buckets[0].Count)
}

func TestTopNLocations(t *testing.T) {
	counts := []*model.LocationCount{
		{Location: "main st", Count: 4},
		{Location: "5th ave", Count: 9},
		{Location: "main st", Count: 3},
		{Location: "", Count: 100},
		{Location: "elm st", Count: 6},
	}

	top := topNLocations(counts, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, "5th ave", top[0].Location)
	assert.Equal(t, 9, top[0].Count)
	assert.Equal(t, "main st", top[1].Location)
	assert.Equal(t, 7, top[1].Count)
}

func TestTopNLocationsTieBreaksAlphabetically(t *testing.T) {
	counts := []*model.LocationCount{
		{Location: "b st", Count: 3},
		{Location: "a st", Count: 3},
	}

	top := topNLocations(counts, 5)

	assert.Equal(t, "a st", top[0].Location)
	assert.Equal(t, "b st", top[1].Location)
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 30, clampDays(0))
	assert.Equal(t, 30, clampDays(-1))
	assert.Equal(t, 7, clampDays(7))
	assert.Equal(t, 365, clampDays(9999))
}
