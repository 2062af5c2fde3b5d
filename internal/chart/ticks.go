package chart

import (
	"fmt"
	"time"

	"SwapBoard/internal/model"
)

// Tick label layouts.
const (
	LayoutHourMinute = "15:04 PM"
	LayoutMonthDay   = "Jan 02"
	LayoutYear       = "Jan 02, 06"
)

// TickSpec is the axis configuration for a period and width.
type TickSpec struct {
	Count  int    `json:"count"`
	Layout string `json:"layout"`
}

// Format renders t with the selected layout.
func (t TickSpec) Format(v time.Time) string { return v.Format(t.Layout) }

// TickCount picks how many ticks fit the available width.
func TickCount(width float64) int {
	switch {
	case width < 400:
		return 4
	case width < 600:
		return 5
	default:
		return 8
	}
}

// FormatTick selects the tick count and label layout for the bottom axis.
func FormatTick(period model.Period, width float64) (TickSpec, error) {
	spec := TickSpec{Count: TickCount(width)}
	switch period {
	case model.PeriodOneHour, model.PeriodOneDay:
		spec.Layout = LayoutHourMinute
	case model.PeriodOneYear:
		spec.Layout = LayoutYear
	case model.PeriodOneWeek, model.PeriodOneMonth:
		spec.Layout = LayoutMonthDay
	default:
		return TickSpec{}, fmt.Errorf("%w: %q", ErrUnrecognizedPeriod, period)
	}
	return spec, nil
}

// MustFormatTick is FormatTick for periods already validated at the edge.
// It panics on an unrecognized period.
func MustFormatTick(period model.Period, width float64) TickSpec {
	spec, err := FormatTick(period, width)
	if err != nil {
		panic(err)
	}
	return spec
}

// Ticks returns count evenly spaced instants across the time domain,
// both ends included.
func Ticks(ts TimeScale, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []time.Time{ts.Start()}
	}
	lo, hi := ts.Domain[0], ts.Domain[1]
	step := (hi - lo) / float64(count-1)
	out := make([]time.Time, count)
	for i := range out {
		out[i] = model.MillisToTime(lo + step*float64(i))
	}
	return out
}
