package seasonal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_baseline/internal/model"
	"energy_baseline/internal/weather"
)

func modelDataOverDays(t *testing.T, start time.Time, days int) *ModelData {
	t.Helper()
	var data model.Series
	var temps []weather.Reading
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		data = append(data, model.Observation{Start: day, Value: 1})
		temps = append(temps, weather.Reading{Time: day, TempF: 70})
	}
	md, err := DefaultModel().BuildModelData(data, temps)
	require.NoError(t, err)
	return md
}

func TestSelectFormula_FullYear(t *testing.T) {
	md := modelDataOverDays(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 365)

	formula := DefaultModel().SelectFormula(md, "")
	assert.Equal(t,
		"energy ~ CDD + HDD"+
			" + CDD*month + HDD*month + month"+
			" + CDD*weekday + HDD*weekday + weekday"+
			" + holiday_name",
		formula)
}

func TestSelectFormula_ShortSpan(t *testing.T) {
	// Ten days cover all weekdays but only one month and no holidays.
	md := modelDataOverDays(t, time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC), 10)

	formula := DefaultModel().SelectFormula(md, "")
	assert.Equal(t, "energy ~ CDD + HDD + CDD*weekday + HDD*weekday + weekday", formula)
}

func TestSelectFormula_FewWeekdays(t *testing.T) {
	// Monday through Friday only.
	md := modelDataOverDays(t, time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC), 5)

	formula := DefaultModel().SelectFormula(md, "")
	assert.Equal(t, "energy ~ CDD + HDD", formula)
}

func TestSelectFormula_HalfYearHasMonthsButNotHolidays(t *testing.T) {
	// Half a year spans every weekday but misses months and the full
	// holiday label set.
	md := modelDataOverDays(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 182)

	formula := DefaultModel().SelectFormula(md, "")
	assert.Equal(t, "energy ~ CDD + HDD + CDD*weekday + HDD*weekday + weekday", formula)
}

func TestSelectFormula_CustomBase(t *testing.T) {
	md := modelDataOverDays(t, time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC), 5)

	formula := DefaultModel().SelectFormula(md, "energy ~ CDD")
	assert.Equal(t, "energy ~ CDD", formula)
}

func TestSelectFormula_HolidayGateIsExact(t *testing.T) {
	// A full year observes all 11 labels; removing the "none" days leaves
	// 10 and must disable the holiday group even with months and weekdays
	// still fully covered.
	md := modelDataOverDays(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 365)

	trimmed := &ModelData{}
	for _, r := range md.Rows {
		if r.Holiday != "none" {
			trimmed.Rows = append(trimmed.Rows, r)
		}
	}

	formula := DefaultModel().SelectFormula(trimmed, "")
	assert.NotContains(t, formula, "holiday_name")
}
