package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Sample is a single price observation.
type Sample struct {
	Time  time.Time
	Value float64
}

// MarshalJSON encodes the sample as the upstream [unix_millis, price] pair.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(s.Time.UnixMilli()), s.Value})
}

// UnmarshalJSON decodes a [unix_millis, price] pair.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode sample: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode sample: expected 2 elements, got %d", len(pair))
	}
	s.Time = MillisToTime(pair[0])
	s.Value = pair[1]
	return nil
}

// Series is an ordered price history, oldest first. A Series is replaced
// wholesale on re-fetch and never mutated in place.
type Series []Sample

// Last returns the most recent sample and false if the series is empty.
func (s Series) Last() (Sample, bool) {
	if len(s) == 0 {
		return Sample{}, false
	}
	return s[len(s)-1], true
}

// Values returns the price column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Times returns the timestamp column.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Time
	}
	return out
}

// MillisToTime converts a possibly fractional unix millisecond value.
func MillisToTime(ms float64) time.Time {
	whole, frac := math.Modf(ms)
	return time.UnixMilli(int64(whole)).Add(time.Duration(frac * float64(time.Millisecond)))
}

// Pair identifies a chart by its CoinGecko ids, e.g. weth / usd.
type Pair struct {
	Base  string `yaml:"base" json:"base"`
	Quote string `yaml:"quote" json:"quote"`
}

func (p Pair) String() string { return p.Base + "/" + p.Quote }

// ViewportBounds is the pixel size of the rendering surface.
type ViewportBounds struct {
	Width  float64
	Height float64
}
