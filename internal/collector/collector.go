package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"SwapBoard/internal/cache"
	"SwapBoard/internal/chart"
	"SwapBoard/internal/model"
	"SwapBoard/internal/recorder"
)

// DefaultTTL matches how long the dashboard treats a chart as fresh.
const DefaultTTL = 5 * time.Minute

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series model.Series
	Err    error
	Calls  int

	mu sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, _ model.Pair, period model.Period) (model.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	return generateMockSeries(m.Price, period, 60, time.Now()), nil
}

func generateMockSeries(basePrice float64, period model.Period, count int, end time.Time) model.Series {
	window := time.Duration(period.Days() * float64(24*time.Hour))
	step := window / time.Duration(count)
	series := make(model.Series, count)
	for i := 0; i < count; i++ {
		series[i] = model.Sample{
			Time:  end.Add(-window + time.Duration(i+1)*step),
			Value: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return series
}

// FallbackFetcher tries each source in order and returns the first success.
type FallbackFetcher struct {
	Fetchers []SeriesFetcher
}

func (f *FallbackFetcher) Name() string {
	names := make([]string, len(f.Fetchers))
	for i, s := range f.Fetchers {
		names[i] = s.Name()
	}
	return strings.Join(names, ">")
}

func (f *FallbackFetcher) FetchSeries(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	var errs []error
	for _, s := range f.Fetchers {
		series, err := s.FetchSeries(ctx, pair, period)
		if err == nil {
			return series, nil
		}
		log.Printf("[WARN] %s fetch %s %s failed: %v", s.Name(), pair, period, err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, errors.New("no series sources configured")
	}
	return nil, errors.Join(errs...)
}

// Collector serves chart series through a cache and records every fresh fetch.
type Collector struct {
	Fetcher  SeriesFetcher
	Cache    cache.Cache
	Recorder recorder.Recorder
	TTL      time.Duration
}

// NewCollector creates a new Collector.
func NewCollector(fetcher SeriesFetcher, c cache.Cache, rec recorder.Recorder) *Collector {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Cache: c, Recorder: rec, TTL: DefaultTTL}
}

func seriesKey(pair model.Pair, period model.Period) string {
	return fmt.Sprintf("series:%s:%s:%s", pair.Base, pair.Quote, period)
}

// Series returns the series for pair and period from cache, fetching it on a miss.
// A cached or fetched series may be shorter than chart.MinSamples; callers decide
// how to present that.
func (c *Collector) Series(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	key := seriesKey(pair, period)

	var cached model.Series
	if ok, err := c.Cache.Get(ctx, key, &cached); err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
	} else if ok {
		return cached, nil
	}

	return c.Refresh(ctx, pair, period)
}

// Refresh fetches the series upstream, bypassing the cache, then stores it.
// When the upstream fails the most recent recorded snapshot is served instead,
// without caching it, so the next request retries upstream.
func (c *Collector) Refresh(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	series, err := c.Fetcher.FetchSeries(ctx, pair, period)
	if err != nil {
		err = fmt.Errorf("fetch %s %s: %w", pair, period, err)
		if snap := c.lastRecorded(ctx, pair, period); snap != nil {
			log.Printf("[WARN] %v; serving snapshot from %s", err, snap.FetchedAt.Format(time.RFC3339))
			return snap.Series, nil
		}
		return nil, err
	}

	if err := c.Cache.Set(ctx, seriesKey(pair, period), series, c.TTL); err != nil {
		log.Printf("[WARN] cache set %s %s: %v", pair, period, err)
	}

	if b, err := chart.Validate(series); err == nil {
		if err := c.Recorder.RecordSeries(ctx, &recorder.SeriesSnapshot{
			Pair:      pair,
			Period:    period,
			Series:    series,
			MinValue:  b.Min,
			MaxValue:  b.Max,
			FetchedAt: time.Now(),
		}); err != nil {
			log.Printf("[ERROR] record series %s %s: %v", pair, period, err)
		}
	}
	return series, nil
}

func (c *Collector) lastRecorded(ctx context.Context, pair model.Pair, period model.Period) *recorder.SeriesSnapshot {
	if ctx.Err() != nil {
		return nil
	}
	snap, err := c.Recorder.LatestSnapshot(ctx, pair, period)
	if err != nil {
		log.Printf("[WARN] latest snapshot %s %s: %v", pair, period, err)
		return nil
	}
	return snap
}

// CurrentPrice is the last value of the series rounded to three decimals,
// or "" for an empty series.
func CurrentPrice(series model.Series) string {
	last, ok := series.Last()
	if !ok {
		return ""
	}
	return chart.FormatPrice(last.Value)
}
