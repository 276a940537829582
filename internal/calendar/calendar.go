// Package calendar resolves public-holiday names for daily model data.
package calendar

import (
	"strings"
	"time"
)

// Calendar looks up the holiday name for a date. The returned bool is
// false when the date is not a holiday.
type Calendar interface {
	Get(date time.Time) (string, bool)
}

// NoHoliday is the label attached to dates without a holiday match.
const NoHoliday = "none"

// observedSuffix marks a holiday shifted off a weekend. It is stripped so
// the observed and actual holiday share one categorical label.
const observedSuffix = " (Observed)"

// Names maps each date to its holiday label under cal, or "none". A nil
// cal means the default United States calendar. This is a pure function of
// (dates, cal): it reads no state beyond its arguments.
func Names(dates []time.Time, cal Calendar) []string {
	if cal == nil {
		cal = US()
	}
	names := make([]string, len(dates))
	for i, d := range dates {
		name, ok := cal.Get(d)
		if !ok {
			names[i] = NoHoliday
			continue
		}
		names[i] = strings.TrimSuffix(name, observedSuffix)
	}
	return names
}
