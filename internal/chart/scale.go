package chart

import (
	"fmt"
	"math"
	"time"

	"SwapBoard/internal/model"
)

const (
	// FallbackDimension replaces a zero width or height before the surface is measured.
	FallbackDimension = 100
	// ShortWindowPadding is the absolute value-axis pad for the last-hour window.
	// It is not scaled by price magnitude.
	ShortWindowPadding = 0.01
)

// Margin is the inset of the plot area inside the surface.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin is the inset the dashboard draws with.
var DefaultMargin = Margin{Top: 10, Bottom: 10}

// InnerHeight is the plot height left after vertical margins. A degenerate
// surface height falls back to FallbackDimension before the margins are
// taken off, and the result is never below one pixel.
func InnerHeight(height float64, m Margin) float64 {
	return math.Max(1, dimension(height)-m.Top-m.Bottom)
}

// PlotScales builds the scales for a whole surface: the time axis spans the
// surface width and the value axis the height inside DefaultMargin.
func PlotScales(series model.Series, bounds model.ViewportBounds, period model.Period) (Scales, error) {
	return BuildScales(series, bounds.Width, InnerHeight(bounds.Height, DefaultMargin), period)
}

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// Scale maps v from the domain to the range. A zero-width domain maps
// every input to the middle of the range.
func (s LinearScale) Scale(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	return s.Range[0] + (v-s.Domain[0])/d*(s.Range[1]-s.Range[0])
}

// Invert maps a pixel back to the domain.
func (s LinearScale) Invert(px float64) float64 {
	r := s.Range[1] - s.Range[0]
	if r == 0 || s.Domain[1] == s.Domain[0] {
		return s.Domain[0]
	}
	return s.Domain[0] + (px-s.Range[0])/r*(s.Domain[1]-s.Domain[0])
}

// TimeScale is a LinearScale over unix milliseconds.
type TimeScale struct {
	LinearScale
}

// Start and End return the time domain.
func (s TimeScale) Start() time.Time { return model.MillisToTime(s.Domain[0]) }
func (s TimeScale) End() time.Time   { return model.MillisToTime(s.Domain[1]) }

// ScaleTime maps an instant to its x pixel.
func (s TimeScale) ScaleTime(t time.Time) float64 {
	return s.Scale(timeToMillis(t))
}

// InvertTime maps an x pixel to an instant.
func (s TimeScale) InvertTime(px float64) time.Time {
	return model.MillisToTime(s.Invert(px))
}

// Scales is the pair of mappings used to draw one series.
type Scales struct {
	Time   TimeScale
	Value  LinearScale
	Bounds Bounds
	Width  float64
	Height float64
}

// BuildScales derives the time->x and value->y mappings for a series.
// The value range is inverted because pixel y grows downward. The last-hour
// window pads the value domain by ShortWindowPadding so that a nearly flat
// price still shows movement.
func BuildScales(series model.Series, width, height float64, period model.Period) (Scales, error) {
	b, err := Validate(series)
	if err != nil {
		return Scales{}, err
	}
	width = dimension(width)
	height = dimension(height)

	lo, hi := timeExtent(series)
	ts := TimeScale{LinearScale{
		Domain: [2]float64{timeToMillis(lo), timeToMillis(hi)},
		Range:  [2]float64{0, width},
	}}

	return Scales{
		Time:   ts,
		Value:  LinearScale{Domain: ValueDomain(b, period), Range: [2]float64{height, 0}},
		Bounds: b,
		Width:  width,
		Height: height,
	}, nil
}

// ValueDomain applies the period padding policy to a value extent.
func ValueDomain(b Bounds, period model.Period) [2]float64 {
	if period == model.PeriodOneHour {
		return [2]float64{b.Min - ShortWindowPadding, b.Max + ShortWindowPadding}
	}
	return [2]float64{b.Min, b.Max}
}

func (s Scales) String() string {
	return fmt.Sprintf("time[%s..%s]->[0,%.0f] value[%g..%g]->[%.0f,0]",
		s.Time.Start().Format(time.RFC3339), s.Time.End().Format(time.RFC3339), s.Width,
		s.Value.Domain[0], s.Value.Domain[1], s.Height)
}

func dimension(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return FallbackDimension
	}
	return v
}

func timeExtent(series model.Series) (lo, hi time.Time) {
	lo, hi = series[0].Time, series[0].Time
	for _, s := range series[1:] {
		if s.Time.Before(lo) {
			lo = s.Time
		}
		if s.Time.After(hi) {
			hi = s.Time
		}
	}
	return lo, hi
}

func timeToMillis(t time.Time) float64 {
	return float64(t.UnixMilli()) + float64(t.Nanosecond()%int(time.Millisecond))/float64(time.Millisecond)
}
