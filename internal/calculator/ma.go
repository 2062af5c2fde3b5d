package calculator

import (
	"errors"

	"SwapBoard/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified window.
func CalculateSMA(prices []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(prices) < window {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - window; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(window), nil
}

// MovingAverage returns the rolling SMA of the series. The result starts at
// the window-th sample and keeps its timestamps.
func MovingAverage(series model.Series, window int) (model.Series, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(series) < window {
		return nil, errors.New("not enough data for SMA calculation")
	}
	out := make(model.Series, 0, len(series)-window+1)
	sum := 0.0
	for i, s := range series {
		sum += s.Value
		if i >= window {
			sum -= series[i-window].Value
		}
		if i >= window-1 {
			out = append(out, model.Sample{Time: s.Time, Value: sum / float64(window)})
		}
	}
	return out, nil
}

// Stats summarises a series for the price header.
type Stats struct {
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Change   float64 `json:"changePercent"`
	Position float64 `json:"position"`
}

// Summarize computes Stats over the whole series.
func Summarize(series model.Series) (Stats, error) {
	high, low, err := Range(series)
	if err != nil {
		return Stats{}, err
	}
	change, err := PercentChange(series)
	if err != nil {
		return Stats{}, err
	}
	last := series[len(series)-1].Value
	pos, err := Position(last, high, low)
	if err != nil {
		return Stats{}, err
	}
	return Stats{High: high, Low: low, Change: change, Position: pos}, nil
}
