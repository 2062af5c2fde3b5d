package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwapBoard/internal/model"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls []string
	fail  model.Period
}

func (f *fakeRefresher) Refresh(_ context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pair.String()+":"+string(period))
	if period == f.fail {
		return nil, errors.New("throttled")
	}
	return model.Series{{Value: 1}, {Value: 2}}, nil
}

func TestRunWarmNow(t *testing.T) {
	r := &fakeRefresher{fail: model.PeriodOneYear}
	pairs := []model.Pair{{Base: "weth", Quote: "usd"}, {Base: "dai", Quote: "usd"}}
	s := NewScheduler(context.Background(), r, pairs)

	ok, failed := s.RunWarmNow()
	assert.Equal(t, 8, ok)
	assert.Equal(t, 2, failed)
	require.Len(t, r.calls, 10)
	assert.Equal(t, "weth/usd:1H", r.calls[0])
	assert.Equal(t, "dai/usd:1Y", r.calls[9])
}

func TestRunWarmNow_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &fakeRefresher{}
	s := NewScheduler(ctx, r, []model.Pair{{Base: "weth", Quote: "usd"}})

	ok, failed := s.RunWarmNow()
	assert.Zero(t, ok)
	assert.Zero(t, failed)
	assert.Empty(t, r.calls)
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRefresher{}, nil)
	assert.NoError(t, s.RegisterAll("0 */5 * * * *"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.RegisterAll("not a cron"))
}
