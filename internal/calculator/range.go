package calculator

import (
	"errors"
	"math"

	"SwapBoard/internal/model"
)

// ErrNoSamples is returned when a statistic needs at least one sample.
var ErrNoSamples = errors.New("no samples provided")

// Range scans the series and returns the highest and lowest price.
func Range(series model.Series) (high, low float64, err error) {
	if len(series) == 0 {
		return 0, 0, ErrNoSamples
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, s := range series {
		if s.Value > high {
			high = s.Value
		}
		if s.Value < low {
			low = s.Value
		}
	}
	return high, low, nil
}

// Position returns where current sits within [low, high] (0.0~1.0).
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// PercentChange is the move from the first to the last sample in percent.
func PercentChange(series model.Series) (float64, error) {
	if len(series) < 2 {
		return 0, errors.New("not enough samples for change")
	}
	first := series[0].Value
	if first == 0 {
		return 0, errors.New("first price is zero")
	}
	return (series[len(series)-1].Value - first) / first * 100, nil
}
