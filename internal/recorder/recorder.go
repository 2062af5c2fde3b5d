package recorder

import (
	"context"
	"time"

	"SwapBoard/internal/model"
)

// SeriesSnapshot is one fetched chart series.
type SeriesSnapshot struct {
	Pair      model.Pair
	Period    model.Period
	Series    model.Series
	MinValue  float64
	MaxValue  float64
	FetchedAt time.Time
}

// Recorder persists fetched series for later analysis.
type Recorder interface {
	RecordSeries(ctx context.Context, snap *SeriesSnapshot) error
	// LatestSnapshot returns nil, nil when nothing was recorded for the pair and period.
	LatestSnapshot(ctx context.Context, pair model.Pair, period model.Period) (*SeriesSnapshot, error)
	Close() error
}
