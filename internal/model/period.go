package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Period selects the requested chart window.
type Period string

const (
	PeriodOneHour  Period = "1H"
	PeriodOneDay   Period = "1D"
	PeriodOneWeek  Period = "1W"
	PeriodOneMonth Period = "1M"
	PeriodOneYear  Period = "1Y"
)

// OneHourInDays is the day count the dashboard sends for the last-hour window.
const OneHourInDays = 0.04166666666

// Periods lists every supported period, shortest first.
var Periods = []Period{PeriodOneHour, PeriodOneDay, PeriodOneWeek, PeriodOneMonth, PeriodOneYear}

var periodDays = map[Period]float64{
	PeriodOneHour:  OneHourInDays,
	PeriodOneDay:   1,
	PeriodOneWeek:  7,
	PeriodOneMonth: 30,
	PeriodOneYear:  365,
}

var periodWordings = map[Period]string{
	PeriodOneHour:  "past hour",
	PeriodOneDay:   "past day",
	PeriodOneWeek:  "past week",
	PeriodOneMonth: "past month",
	PeriodOneYear:  "past year",
}

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	_, ok := periodDays[p]
	return ok
}

// Days returns the day count sent upstream. Unknown periods return 0.
func (p Period) Days() float64 { return periodDays[p] }

// DaysParam formats Days the way the upstream query expects it.
func (p Period) DaysParam() string {
	return strconv.FormatFloat(p.Days(), 'f', -1, 64)
}

// Wording returns the human phrase shown next to the price change.
func (p Period) Wording() string { return periodWordings[p] }

// ParsePeriod accepts either a label ("1D") or the day count ("1", "0.04166666666").
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if p := Period(strings.ToUpper(s)); p.Valid() {
		return p, nil
	}
	days, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("unknown period %q", s)
	}
	for _, p := range Periods {
		if periodDays[p] == days {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}
