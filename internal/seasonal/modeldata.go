// Package seasonal builds the daily covariate tables and the regression
// formula for the seasonal baseline model: degree-day, month, weekday and
// holiday effects at daily frequency.
package seasonal

import (
	"errors"
	"math"
	"sort"
	"time"

	"energy_baseline/internal/calendar"
	"energy_baseline/internal/model"
	"energy_baseline/internal/weather"
)

// ErrEmptyModelData means no usable rows remained after resampling to
// daily frequency and dropping days missing either aggregate. The input is
// insufficient; retrying cannot help.
var ErrEmptyModelData = errors.New("no data left for model fit after daily resampling and dropping missing days")

// Row is one daily model-data observation.
type Row struct {
	Date    time.Time // midnight, trace timezone
	Energy  float64   // sum of trace values that day
	TempF   float64   // mean temperature that day
	CDD     float64
	HDD     float64
	Holiday string
}

// ModelData is the derived daily table consumed by the regression fit.
type ModelData struct {
	Rows []Row
}

// FixtureRow is a daily prediction-time covariate observation; there is no
// energy ground truth at prediction time.
type FixtureRow struct {
	Date    time.Time
	TempF   float64
	CDD     float64
	HDD     float64
	Holiday string
}

// FixtureData is the prediction-time analogue of ModelData.
type FixtureData struct {
	Rows []FixtureRow
}

// Model holds the seasonal variant's parameters. The zero Holidays means
// the United States calendar.
type Model struct {
	CoolingBaseTempF float64
	HeatingBaseTempF float64
	Holidays         calendar.Calendar
}

// DefaultModel returns the seasonal model with 65°F degree-day bases and
// the default holiday calendar.
func DefaultModel() *Model {
	return &Model{CoolingBaseTempF: 65, HeatingBaseTempF: 65}
}

// dayAgg accumulates one day's energy and temperature samples. NaN samples
// are skipped; a day with zero samples on either side has an undefined
// aggregate and is dropped.
type dayAgg struct {
	energySum   float64
	energyCount int
	tempSum     float64
	tempCount   int
}

// BuildModelData resamples the trace series and temperatures into daily
// buckets aligned at midnights of the trace timezone, drops days missing
// either aggregate, and computes degree-day covariates and holiday labels.
func (m *Model) BuildModelData(data model.Series, temps []weather.Reading) (*ModelData, error) {
	loc := data.Location()

	days := make(map[time.Time]*dayAgg)
	at := func(d time.Time) *dayAgg {
		a, ok := days[d]
		if !ok {
			a = &dayAgg{}
			days[d] = a
		}
		return a
	}

	for _, obs := range data {
		if math.IsNaN(obs.Value) {
			continue
		}
		a := at(dayStart(obs.Start, loc))
		a.energySum += obs.Value
		a.energyCount++
	}
	for _, r := range temps {
		if math.IsNaN(r.TempF) {
			continue
		}
		a := at(dayStart(r.Time, loc))
		a.tempSum += r.TempF
		a.tempCount++
	}

	dates := sortedDates(days)

	md := &ModelData{}
	for _, d := range dates {
		a := days[d]
		if a.energyCount == 0 || a.tempCount == 0 {
			continue
		}
		tempF := a.tempSum / float64(a.tempCount)
		md.Rows = append(md.Rows, Row{
			Date:   d,
			Energy: a.energySum,
			TempF:  tempF,
			CDD:    math.Max(tempF-m.CoolingBaseTempF, 0),
			HDD:    math.Max(m.HeatingBaseTempF-tempF, 0),
		})
	}

	if len(md.Rows) == 0 {
		return nil, ErrEmptyModelData
	}

	names := calendar.Names(md.Dates(), m.Holidays)
	for i := range md.Rows {
		md.Rows[i].Holiday = names[i]
	}
	return md, nil
}

// BuildFixtureData derives prediction-time covariates from temperatures
// alone: same daily resampling and degree-day computation, no energy
// column and no emptiness check. The holiday label is always attached.
func (m *Model) BuildFixtureData(temps []weather.Reading) *FixtureData {
	loc := time.UTC
	if len(temps) > 0 {
		loc = temps[0].Time.Location()
	}

	days := make(map[time.Time]*dayAgg)
	for _, r := range temps {
		if math.IsNaN(r.TempF) {
			continue
		}
		d := dayStart(r.Time, loc)
		a, ok := days[d]
		if !ok {
			a = &dayAgg{}
			days[d] = a
		}
		a.tempSum += r.TempF
		a.tempCount++
	}

	fd := &FixtureData{}
	for _, d := range sortedDates(days) {
		a := days[d]
		if a.tempCount == 0 {
			continue
		}
		tempF := a.tempSum / float64(a.tempCount)
		fd.Rows = append(fd.Rows, FixtureRow{
			Date:  d,
			TempF: tempF,
			CDD:   math.Max(tempF-m.CoolingBaseTempF, 0),
			HDD:   math.Max(m.HeatingBaseTempF-tempF, 0),
		})
	}

	names := calendar.Names(fd.Dates(), m.Holidays)
	for i := range fd.Rows {
		fd.Rows[i].Holiday = names[i]
	}
	return fd
}

// Dates returns the daily index of the table.
func (md *ModelData) Dates() []time.Time {
	dates := make([]time.Time, len(md.Rows))
	for i, r := range md.Rows {
		dates[i] = r.Date
	}
	return dates
}

// Dates returns the daily index of the table.
func (fd *FixtureData) Dates() []time.Time {
	dates := make([]time.Time, len(fd.Rows))
	for i, r := range fd.Rows {
		dates[i] = r.Date
	}
	return dates
}

// dayStart truncates a timestamp to midnight of its day in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	tl := t.In(loc)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, loc)
}

func sortedDates(days map[time.Time]*dayAgg) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
