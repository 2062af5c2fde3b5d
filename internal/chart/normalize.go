package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"SwapBoard/internal/model"
)

var (
	// ErrInvalidSeries means the series cannot be charted. Callers show a
	// "no data" state instead of propagating it.
	ErrInvalidSeries = errors.New("invalid series")
	// ErrUnrecognizedPeriod is a programming error: the period enumeration is closed.
	ErrUnrecognizedPeriod = errors.New("unrecognized period")
)

// MinSamples is the smallest series that can be charted.
const MinSamples = 2

// Bounds is the value extent of a series.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Decode converts a raw decoded JSON value into a Series without enforcing
// a minimum length. Accepted inputs are []any of [ts, value] pairs (as
// produced by encoding/json), [][]float64, [][2]float64 and model.Series.
func Decode(raw any) (model.Series, error) {
	switch v := raw.(type) {
	case model.Series:
		for i, s := range v {
			if !finite(s.Value) {
				return nil, fmt.Errorf("%w: non-finite value at %d", ErrInvalidSeries, i)
			}
		}
		return v, nil
	case [][2]float64:
		out := make(model.Series, 0, len(v))
		for i, p := range v {
			s, err := pairToSample(i, p[0], p[1])
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case [][]float64:
		out := make(model.Series, 0, len(v))
		for i, p := range v {
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: entry %d has %d elements", ErrInvalidSeries, i, len(p))
			}
			s, err := pairToSample(i, p[0], p[1])
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case []any:
		out := make(model.Series, 0, len(v))
		for i, e := range v {
			p, ok := e.([]any)
			if !ok || len(p) != 2 {
				return nil, fmt.Errorf("%w: entry %d is not a pair", ErrInvalidSeries, i)
			}
			ts, ok1 := toFloat(p[0])
			val, ok2 := toFloat(p[1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: entry %d is not numeric", ErrInvalidSeries, i)
			}
			s, err := pairToSample(i, ts, val)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected an array, got %T", ErrInvalidSeries, raw)
	}
}

// Normalize validates a raw upstream series and returns it in input order
// together with its value bounds. Upstream data is assumed pre-sorted by time.
func Normalize(raw any) (model.Series, Bounds, error) {
	series, err := Decode(raw)
	if err != nil {
		return nil, Bounds{}, err
	}
	b, err := Validate(series)
	if err != nil {
		return nil, Bounds{}, err
	}
	return series, b, nil
}

// Validate checks that a typed series can be charted and returns its bounds.
func Validate(series model.Series) (Bounds, error) {
	if len(series) < MinSamples {
		return Bounds{}, fmt.Errorf("%w: need at least %d samples, got %d", ErrInvalidSeries, MinSamples, len(series))
	}
	b := Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for i, s := range series {
		if !finite(s.Value) {
			return Bounds{}, fmt.Errorf("%w: non-finite value at %d", ErrInvalidSeries, i)
		}
		if s.Value < b.Min {
			b.Min = s.Value
		}
		if s.Value > b.Max {
			b.Max = s.Value
		}
	}
	return b, nil
}

func pairToSample(i int, ts, val float64) (model.Sample, error) {
	if !finite(ts) || !finite(val) {
		return model.Sample{}, fmt.Errorf("%w: non-finite value at %d", ErrInvalidSeries, i)
	}
	return model.Sample{Time: model.MillisToTime(ts), Value: val}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
