package client

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Formatter renders values for display. Consumers inject one instance and
// call it from column Render funcs, keeping formatting rules in one place
// instead of scattered across tables.
type Formatter struct {
	// DateLayout defaults to "02 Jan 2006".
	DateLayout string
	// TimeLayout defaults to "02 Jan 2006 15:04".
	TimeLayout string
}

// Money renders a minor-unit amount with its currency code, e.g.
// Money(1234550, "SAR") == "12,345.50 SAR".
func (f Formatter) Money(minorUnits int64, currency string) string {
	major := float64(minorUnits) / 100
	return fmt.Sprintf("%s %s", humanize.FormatFloat("#,###.##", major), currency)
}

// Number renders an integer with thousands separators.
func (f Formatter) Number(n int64) string {
	return humanize.Comma(n)
}

// Date renders a calendar date.
func (f Formatter) Date(t time.Time) string {
	layout := f.DateLayout
	if layout == "" {
		layout = "02 Jan 2006"
	}
	return t.Format(layout)
}

// DateTime renders a timestamp with its time of day.
func (f Formatter) DateTime(t time.Time) string {
	layout := f.TimeLayout
	if layout == "" {
		layout = "02 Jan 2006 15:04"
	}
	return t.Format(layout)
}

// Relative renders a timestamp as a human distance from now ("3 days ago").
func (f Formatter) Relative(t time.Time) string {
	return humanize.Time(t)
}
