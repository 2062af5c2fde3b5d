package chart

import (
	"sort"
	"time"

	"SwapBoard/internal/model"
)

// ResolveNearestSample returns the sample closest in time to the instant
// under pointerX. The series must hold at least MinSamples samples; callers
// show "no data" otherwise. Shorter input yields the zero Sample.
func ResolveNearestSample(series model.Series, ts TimeScale, pointerX float64) model.Sample {
	s, _ := ResolveNearestTime(series, ts.InvertTime(pointerX))
	return s
}

// ResolveNearestTime finds the sample nearest to x with a left-biased binary
// search. Equal distances resolve to the earlier sample. The returned index
// is -1 when the series is too short to resolve.
func ResolveNearestTime(series model.Series, x time.Time) (model.Sample, int) {
	n := len(series)
	if n < MinSamples {
		return model.Sample{}, -1
	}
	// first index whose time is >= x
	i := sort.Search(n, func(j int) bool { return !series[j].Time.Before(x) })

	switch {
	case i == 0:
		return series[0], 0
	case i == n:
		return series[n-1], n - 1
	}

	a, b := series[i-1], series[i]
	if x.Sub(a.Time) > b.Time.Sub(x) {
		return b, i
	}
	return a, i - 1
}
