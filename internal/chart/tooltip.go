package chart

import (
	"strings"

	"github.com/shopspring/decimal"

	"SwapBoard/internal/model"
)

// LayoutTooltipTime is the timestamp layout shown under the tooltip price.
const LayoutTooltipTime = "Jan 02, 03 PM"

// TooltipData is what the dashboard draws at the pointer.
type TooltipData struct {
	Sample    model.Sample `json:"sample"`
	Left      float64      `json:"left"`
	Top       float64      `json:"top"`
	PriceText string       `json:"priceText"`
	TimeText  string       `json:"timeText"`
}

// Tooltip resolves pointerX against the series and positions the marker on
// the resolved sample.
func Tooltip(series model.Series, sc Scales, pointerX float64) (TooltipData, error) {
	if len(series) < MinSamples {
		return TooltipData{}, ErrInvalidSeries
	}
	s := ResolveNearestSample(series, sc.Time, pointerX)
	return TooltipData{
		Sample:    s,
		Left:      pointerX,
		Top:       sc.Value.Scale(s.Value),
		PriceText: FormatUSD(s.Value),
		TimeText:  s.Time.Format(LayoutTooltipTime),
	}, nil
}

// FormatUSD renders a price as US dollars with three fraction digits and
// thousands separators, e.g. $1,234.568.
func FormatUSD(v float64) string {
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(3)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// FormatPrice renders the current price the way the header shows it.
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
