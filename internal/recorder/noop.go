package recorder

import (
	"context"

	"SwapBoard/internal/model"
)

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSeries(_ context.Context, _ *SeriesSnapshot) error { return nil }
func (n *NoopRecorder) LatestSnapshot(_ context.Context, _ model.Pair, _ model.Period) (*SeriesSnapshot, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
