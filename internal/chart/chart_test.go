package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwapBoard/internal/model"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration, v float64) model.Sample {
	return model.Sample{Time: t0.Add(d), Value: v}
}

func threePoint() model.Series {
	return model.Series{at(0, 100), at(time.Minute, 102), at(2*time.Minute, 98)}
}

func TestNormalize(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`[[1709294400000,100],[1709294460000,102],[1709294520000,98]]`), &decoded))

	series, b, err := Normalize(decoded)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, Bounds{Min: 98, Max: 102}, b)
	assert.Equal(t, int64(1709294400000), series[0].Time.UnixMilli())
	assert.Equal(t, 102.0, series[1].Value)
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"not an array", map[string]any{"prices": 1}},
		{"nil", nil},
		{"empty", []any{}},
		{"single sample", []any{[]any{1.0, 2.0}}},
		{"short pair", []any{[]any{1.0}, []any{2.0, 3.0}}},
		{"non numeric", []any{[]any{1.0, "x"}, []any{2.0, 3.0}}},
		{"NaN", [][2]float64{{1, math.NaN()}, {2, 3}}},
		{"Inf", [][]float64{{1, 1}, {2, math.Inf(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.raw)
			assert.True(t, errors.Is(err, ErrInvalidSeries), "got %v", err)
		})
	}
}

func TestDecode_AllowsShortSeries(t *testing.T) {
	s, err := Decode([][2]float64{{1709294400000, 1}})
	require.NoError(t, err)
	assert.Len(t, s, 1)
}

func TestBuildScales_TimeAxis(t *testing.T) {
	sc, err := BuildScales(threePoint(), 500, 200, model.PeriodOneDay)
	require.NoError(t, err)

	assert.InDelta(t, 0, sc.Time.ScaleTime(t0), 1e-9)
	assert.InDelta(t, 500, sc.Time.ScaleTime(t0.Add(2*time.Minute)), 1e-9)
	assert.InDelta(t, 250, sc.Time.ScaleTime(t0.Add(time.Minute)), 1e-9)

	prev := math.Inf(-1)
	for s := time.Duration(0); s <= 2*time.Minute; s += 7 * time.Second {
		x := sc.Time.ScaleTime(t0.Add(s))
		assert.GreaterOrEqual(t, x, prev)
		prev = x
	}
}

func TestBuildScales_ValueDomain(t *testing.T) {
	day, err := BuildScales(threePoint(), 500, 200, model.PeriodOneDay)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{98, 102}, day.Value.Domain)
	assert.Equal(t, [2]float64{200, 0}, day.Value.Range)
	assert.InDelta(t, 200, day.Value.Scale(98), 1e-9)
	assert.InDelta(t, 0, day.Value.Scale(102), 1e-9)

	hour, err := BuildScales(threePoint(), 500, 200, model.PeriodOneHour)
	require.NoError(t, err)
	assert.InDelta(t, 97.99, hour.Value.Domain[0], 1e-9)
	assert.InDelta(t, 102.01, hour.Value.Domain[1], 1e-9)
	assert.Less(t, hour.Value.Domain[0], 98.0)
	assert.Greater(t, hour.Value.Domain[1], 102.0)

	for _, p := range []model.Period{model.PeriodOneWeek, model.PeriodOneMonth, model.PeriodOneYear} {
		sc, err := BuildScales(threePoint(), 500, 200, p)
		require.NoError(t, err)
		assert.Equal(t, [2]float64{98, 102}, sc.Value.Domain, p)
	}
}

func TestBuildScales_FallbackViewport(t *testing.T) {
	sc, err := BuildScales(threePoint(), 0, 0, model.PeriodOneDay)
	require.NoError(t, err)
	assert.Equal(t, float64(FallbackDimension), sc.Width)
	assert.Equal(t, float64(FallbackDimension), sc.Height)
	assert.InDelta(t, 100, sc.Time.ScaleTime(t0.Add(2*time.Minute)), 1e-9)
}

func TestBuildScales_RejectsShortSeries(t *testing.T) {
	_, err := BuildScales(model.Series{at(0, 1)}, 500, 200, model.PeriodOneDay)
	assert.ErrorIs(t, err, ErrInvalidSeries)
}

func TestLinearScale_Degenerate(t *testing.T) {
	s := LinearScale{Domain: [2]float64{5, 5}, Range: [2]float64{100, 0}}
	assert.Equal(t, 50.0, s.Scale(5))
	assert.Equal(t, 5.0, s.Invert(42))
}

func TestInnerHeight(t *testing.T) {
	assert.Equal(t, 300.0, InnerHeight(320, DefaultMargin))
	assert.Equal(t, 80.0, InnerHeight(0, DefaultMargin))
	assert.Equal(t, 80.0, InnerHeight(math.NaN(), DefaultMargin))
	assert.Equal(t, 1.0, InnerHeight(15, DefaultMargin))
	assert.Equal(t, 10.0, InnerHeight(30, DefaultMargin))

	// a taller surface never gets a shorter plot
	prev := 0.0
	for h := 1.0; h <= 400; h++ {
		inner := InnerHeight(h, DefaultMargin)
		assert.GreaterOrEqual(t, inner, prev, "height %v", h)
		prev = inner
	}
}

func TestPlotScales(t *testing.T) {
	sc, err := PlotScales(threePoint(), model.ViewportBounds{}, model.PeriodOneDay)
	require.NoError(t, err)
	assert.Equal(t, 100.0, sc.Width)
	assert.Equal(t, 80.0, sc.Height)
	assert.Equal(t, 80.0, sc.Value.Scale(98))
	assert.Equal(t, 0.0, sc.Value.Scale(102))

	sc, err = PlotScales(threePoint(), model.ViewportBounds{Width: 500, Height: 220}, model.PeriodOneDay)
	require.NoError(t, err)
	assert.Equal(t, 200.0, sc.Height)
}

func TestPixels(t *testing.T) {
	assert.Equal(t, 100.0, pixels(0))
	assert.Equal(t, 100.0, pixels(0.4))
	assert.Equal(t, 1.0, pixels(0.6))
	assert.Equal(t, 321.0, pixels(320.5))
}

func TestResolveNearestSample(t *testing.T) {
	series := model.Series{at(0, 1), at(10*time.Second, 2), at(20*time.Second, 3), at(30*time.Second, 4)}
	sc, err := BuildScales(series, 300, 100, model.PeriodOneDay)
	require.NoError(t, err)

	t.Run("exact hit", func(t *testing.T) {
		for i, s := range series {
			got, idx := ResolveNearestTime(series, s.Time)
			assert.Equal(t, s, got)
			assert.Equal(t, i, idx)
		}
	})

	t.Run("tie resolves to earlier", func(t *testing.T) {
		got, idx := ResolveNearestTime(series, t0.Add(15*time.Second))
		assert.Equal(t, 2.0, got.Value)
		assert.Equal(t, 1, idx)
		// pixel 150 inverts to the same midpoint
		assert.Equal(t, 2.0, ResolveNearestSample(series, sc.Time, 150).Value)
	})

	t.Run("closer neighbour wins", func(t *testing.T) {
		got, _ := ResolveNearestTime(series, t0.Add(16*time.Second))
		assert.Equal(t, 3.0, got.Value)
		got, _ = ResolveNearestTime(series, t0.Add(14*time.Second))
		assert.Equal(t, 2.0, got.Value)
	})

	t.Run("before first sample", func(t *testing.T) {
		assert.Equal(t, series[0], ResolveNearestSample(series, sc.Time, -40))
	})

	t.Run("after last sample", func(t *testing.T) {
		assert.Equal(t, series[3], ResolveNearestSample(series, sc.Time, 1000))
	})

	t.Run("idempotent", func(t *testing.T) {
		a := ResolveNearestSample(series, sc.Time, 137)
		b := ResolveNearestSample(series, sc.Time, 137)
		assert.Equal(t, a, b)
	})

	t.Run("does not mutate", func(t *testing.T) {
		before := append(model.Series(nil), series...)
		ResolveNearestSample(series, sc.Time, 77)
		assert.Equal(t, before, series)
	})
}

func TestResolveNearestTime_DuplicateTimestamps(t *testing.T) {
	series := model.Series{at(0, 1), at(10*time.Second, 2), at(10*time.Second, 3), at(20*time.Second, 4)}
	got, idx := ResolveNearestTime(series, t0.Add(10*time.Second))
	assert.Equal(t, 2.0, got.Value)
	assert.Equal(t, 1, idx)
}

func TestResolveNearestTime_TooShort(t *testing.T) {
	_, idx := ResolveNearestTime(model.Series{at(0, 1)}, t0)
	assert.Equal(t, -1, idx)
}

func TestTickCount(t *testing.T) {
	cases := map[float64]int{0: 4, 399: 4, 400: 5, 599: 5, 600: 8, 1200: 8}
	for w, want := range cases {
		assert.Equal(t, want, TickCount(w), "width %v", w)
	}
}

func TestFormatTick(t *testing.T) {
	ts := time.Date(2024, 7, 4, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		period model.Period
		want   string
	}{
		{model.PeriodOneHour, "15:30 PM"},
		{model.PeriodOneDay, "15:30 PM"},
		{model.PeriodOneWeek, "Jul 04"},
		{model.PeriodOneMonth, "Jul 04"},
		{model.PeriodOneYear, "Jul 04, 24"},
	}
	for _, tt := range tests {
		spec, err := FormatTick(tt.period, 500)
		require.NoError(t, err)
		assert.Equal(t, 5, spec.Count)
		assert.Equal(t, tt.want, spec.Format(ts), tt.period)
	}
}

func TestFormatTick_Unrecognized(t *testing.T) {
	_, err := FormatTick(model.Period("2Y"), 500)
	assert.ErrorIs(t, err, ErrUnrecognizedPeriod)
	assert.Panics(t, func() { MustFormatTick(model.Period("2Y"), 500) })
}

func TestTicks(t *testing.T) {
	sc, err := BuildScales(threePoint(), 500, 200, model.PeriodOneDay)
	require.NoError(t, err)

	ticks := Ticks(sc.Time, 5)
	require.Len(t, ticks, 5)
	assert.True(t, ticks[0].Equal(t0))
	assert.True(t, ticks[4].Equal(t0.Add(2*time.Minute)))
	assert.True(t, ticks[2].Equal(t0.Add(time.Minute)))
	assert.Nil(t, Ticks(sc.Time, 0))
}

func TestTooltip(t *testing.T) {
	series := model.Series{at(0, 1234.5678), at(time.Hour, 1300)}
	sc, err := BuildScales(series, 200, 100, model.PeriodOneDay)
	require.NoError(t, err)

	tip, err := Tooltip(series, sc, 20)
	require.NoError(t, err)
	assert.Equal(t, series[0], tip.Sample)
	assert.Equal(t, 20.0, tip.Left)
	assert.InDelta(t, 100, tip.Top, 1e-9)
	assert.Equal(t, "$1,234.568", tip.PriceText)
	assert.Equal(t, "Mar 01, 12 PM", tip.TimeText)

	_, err = Tooltip(series[:1], sc, 20)
	assert.ErrorIs(t, err, ErrInvalidSeries)
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.001", FormatUSD(0.0012))
	assert.Equal(t, "$999.000", FormatUSD(999))
	assert.Equal(t, "$1,000,000.500", FormatUSD(1000000.5))
	assert.Equal(t, "-$12.340", FormatUSD(-12.34))
	assert.Equal(t, "3456.789", FormatPrice(3456.7891))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, threePoint(), model.PeriodOneDay, 400, 200))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	flat := model.Series{at(0, 5), at(time.Minute, 5)}
	require.NoError(t, Render(&buf, flat, model.PeriodOneWeek, 300, 150))
	assert.NotZero(t, buf.Len())

	buf.Reset()
	overlay := model.Series{at(0, 101), at(2*time.Minute, 100)}
	require.NoError(t, Render(&buf, threePoint(), model.PeriodOneDay, 400, 200, overlay, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, Render(&buf, flat[:1], model.PeriodOneDay, 10, 10), ErrInvalidSeries)
}
