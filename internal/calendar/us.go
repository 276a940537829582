package calendar

import (
	"sync"
	"time"
)

// USCalendar resolves United States public holidays. Holidays falling on a
// Saturday are observed the preceding Friday and those on a Sunday the
// following Monday, with the " (Observed)" suffix on the shifted date.
type USCalendar struct {
	mu    sync.Mutex
	years map[int]map[string]string // year -> "MM-DD" -> name
}

// US returns the default United States holiday calendar.
func US() *USCalendar {
	return &USCalendar{years: make(map[int]map[string]string)}
}

// Get returns the holiday name for a date, if any. The date's own
// year/month/day in its location are used.
func (c *USCalendar) Get(date time.Time) (string, bool) {
	year := date.Year()

	c.mu.Lock()
	byDay, ok := c.years[year]
	if !ok {
		byDay = usHolidays(year)
		c.years[year] = byDay
	}
	c.mu.Unlock()

	name, ok := byDay[date.Format("01-02")]
	return name, ok
}

// usHolidays computes the "MM-DD" -> name table for one year.
func usHolidays(year int) map[string]string {
	h := make(map[string]string, 16)

	observe := func(d time.Time, name string) {
		h[d.Format("01-02")] = name
		var shifted time.Time
		switch d.Weekday() {
		case time.Saturday:
			shifted = d.AddDate(0, 0, -1)
		case time.Sunday:
			shifted = d.AddDate(0, 0, 1)
		default:
			return
		}
		// A shift out of this year belongs to the neighboring year's table.
		if shifted.Year() == year {
			h[shifted.Format("01-02")] = name + observedSuffix
		}
	}

	observe(date(year, time.January, 1), "New Year's Day")
	h[nthWeekday(year, time.January, time.Monday, 3).Format("01-02")] = "Martin Luther King Jr. Day"
	h[nthWeekday(year, time.February, time.Monday, 3).Format("01-02")] = "Washington's Birthday"
	h[lastWeekday(year, time.May, time.Monday).Format("01-02")] = "Memorial Day"
	observe(date(year, time.July, 4), "Independence Day")
	h[nthWeekday(year, time.September, time.Monday, 1).Format("01-02")] = "Labor Day"
	h[nthWeekday(year, time.October, time.Monday, 2).Format("01-02")] = "Columbus Day"
	observe(date(year, time.November, 11), "Veterans Day")
	h[nthWeekday(year, time.November, time.Thursday, 4).Format("01-02")] = "Thanksgiving"
	observe(date(year, time.December, 25), "Christmas Day")

	// Next year's New Year's Day observed on this year's Dec 31.
	if date(year+1, time.January, 1).Weekday() == time.Saturday {
		h["12-31"] = "New Year's Day" + observedSuffix
	}

	return h
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nthWeekday returns the n-th given weekday of a month (n is 1-based).
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	d := date(year, month, 1)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+7*(n-1))
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	d := date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(wd) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
