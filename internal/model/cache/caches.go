package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/model"
	modelv1 "roadwatch.dev/backend/internal/model/v1"
	"roadwatch.dev/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// ReportStats is keyed by the day window of the aggregation ("30" etc).
	ReportStats *cache.Set[modelv1.ReportStats]

	// Geocode is keyed by "lat,lng" rounded to four decimals.
	Geocode *cache.Set[string]

	RejectRules *cache.Singular[[]*model.RejectRule]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Initialize(client)
		initializeCaches()
	})
}

func Delete(name string, key null.String) error {
	if key.Valid {
		if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	} else {
		if _, ok := SingularFlusherMap[name]; ok {
			if err := SingularFlusherMap[name](); err != nil {
				return err
			}
		} else if _, ok := SetMap[name]; ok {
			if err := SetMap[name](); err != nil {
				return err
			}
		}
	}
	return nil
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// analytics
	ReportStats = cache.NewSet[modelv1.ReportStats]("reportStats#days")
	SetMap["reportStats#days"] = ReportStats.Flush

	// geocode
	Geocode = cache.NewSet[string]("geocode#coord")
	SetMap["geocode#coord"] = Geocode.Flush

	// reject rules
	RejectRules = cache.NewSingular[[]*model.RejectRule]("rejectRules")
	SingularFlusherMap["rejectRules"] = RejectRules.Delete
}
