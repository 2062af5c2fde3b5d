package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"SwapBoard/internal/model"
)

var (
	lineColor    = drawing.ColorFromHex("00b96d")
	areaColor    = drawing.ColorFromHex("e1faef")
	tickColor    = drawing.ColorFromHex("b4b4b4")
	overlayColor = drawing.ColorFromHex("f59e0b")
)

// Render draws the series as a PNG area chart. It applies the same value
// domain and tick policy as the interactive chart. Overlays, such as a
// moving average, are drawn as plain lines on the same axes.
func Render(w io.Writer, series model.Series, period model.Period, width, height float64, overlays ...model.Series) error {
	surface := model.ViewportBounds{Width: pixels(width), Height: pixels(height)}
	sc, err := PlotScales(series, surface, period)
	if err != nil {
		return err
	}
	spec, err := FormatTick(period, sc.Width)
	if err != nil {
		return err
	}

	lo, hi := sc.Value.Domain[0], sc.Value.Domain[1]
	if lo == hi {
		// the renderer rejects a zero-height range
		lo, hi = lo-ShortWindowPadding, hi+ShortWindowPadding
	}

	ticks := make([]gochart.Tick, 0, spec.Count)
	for _, t := range Ticks(sc.Time, spec.Count) {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(t), Label: spec.Format(t)})
	}

	graph := gochart.Chart{
		Width:      int(surface.Width),
		Height:     int(surface.Height),
		Background: gochart.Style{Padding: gochart.Box{Top: int(DefaultMargin.Top), Bottom: int(DefaultMargin.Bottom)}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Style: gochart.Style{FontColor: tickColor, FontSize: 9},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatPrice(f)
				}
				return ""
			},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    string(period),
				XValues: series.Times(),
				YValues: series.Values(),
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					FillColor:   areaColor,
				},
			},
		},
	}
	for i, o := range overlays {
		if len(o) == 0 {
			continue
		}
		graph.Series = append(graph.Series, gochart.TimeSeries{
			Name:    fmt.Sprintf("overlay-%d", i),
			XValues: o.Times(),
			YValues: o.Values(),
			Style:   gochart.Style{StrokeColor: overlayColor, StrokeWidth: 1},
		})
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// pixels rounds a surface dimension to whole pixels, falling back like
// BuildScales when nothing would be left to draw on.
func pixels(v float64) float64 {
	px := math.Round(dimension(v))
	if px < 1 {
		return FallbackDimension
	}
	return px
}
