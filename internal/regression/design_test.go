package regression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_baseline/internal/seasonal"
)

func dailyRows(start time.Time, days int, tempAt func(i int) float64) []seasonal.Row {
	rows := make([]seasonal.Row, days)
	for i := range rows {
		tempF := tempAt(i)
		cdd, hdd := 0.0, 0.0
		if tempF > 65 {
			cdd = tempF - 65
		} else {
			hdd = 65 - tempF
		}
		rows[i] = seasonal.Row{
			Date:    start.AddDate(0, 0, i),
			TempF:   tempF,
			CDD:     cdd,
			HDD:     hdd,
			Holiday: "none",
		}
	}
	return rows
}

func TestBuildDesign_NumericTerms(t *testing.T) {
	md := &seasonal.ModelData{Rows: dailyRows(
		time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), 3,
		func(i int) float64 { return 60 + float64(i)*10 },
	)}
	for i := range md.Rows {
		md.Rows[i].Energy = float64(i)
	}

	d, err := BuildDesign("energy ~ CDD + HDD", md)
	require.NoError(t, err)

	assert.Equal(t, "energy", d.Response)
	assert.Equal(t, []string{"CDD", "HDD"}, d.Columns)
	require.Len(t, d.X, 3)
	assert.Equal(t, []float64{0, 5}, d.X[0])  // 60°F
	assert.Equal(t, []float64{5, 0}, d.X[1])  // 70°F
	assert.Equal(t, []float64{15, 0}, d.X[2]) // 80°F
	assert.Equal(t, []float64{0, 1, 2}, d.Y)
}

func TestBuildDesign_CategoricalDropsBaseline(t *testing.T) {
	// June 1 2015 was a Monday; a week covers weekdays 0 through 6 and the
	// lowest level (Sunday, 0) is the dropped baseline.
	md := &seasonal.ModelData{Rows: dailyRows(
		time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), 7,
		func(i int) float64 { return 70 },
	)}

	d, err := BuildDesign("energy ~ weekday", md)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"weekday=1", "weekday=2", "weekday=3", "weekday=4", "weekday=5", "weekday=6",
	}, d.Columns)

	// Monday's row activates only the weekday=1 indicator.
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0}, d.X[0])
	// Sunday's row is all zero.
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, d.X[6])
}

func TestBuildDesign_HolidayBaselineIsNone(t *testing.T) {
	rows := dailyRows(time.Date(2015, 12, 24, 0, 0, 0, 0, time.UTC), 3,
		func(i int) float64 { return 40 })
	rows[1].Holiday = "Christmas Day"

	d, err := BuildDesign("energy ~ holiday_name", &seasonal.ModelData{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, []string{"holiday_name=Christmas Day"}, d.Columns)
	assert.Equal(t, []float64{0}, d.X[0])
	assert.Equal(t, []float64{1}, d.X[1])
	assert.Equal(t, []float64{0}, d.X[2])
}

func TestBuildDesign_InteractionColumns(t *testing.T) {
	md := &seasonal.ModelData{Rows: []seasonal.Row{
		{Date: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), TempF: 40, HDD: 25, Holiday: "none"},
		{Date: time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), TempF: 80, CDD: 15, Holiday: "none"},
	}}

	d, err := BuildDesign("energy ~ CDD*month", md)
	require.NoError(t, err)

	// Levels 01 and 07 observed; 01 is the dropped baseline.
	assert.Equal(t, []string{"CDD:month=07"}, d.Columns)
	assert.Equal(t, []float64{0}, d.X[0])
	assert.Equal(t, []float64{15}, d.X[1])
}

func TestBuildDesign_MonthLevelsZeroPadded(t *testing.T) {
	// Zero padding keeps lexicographic level order equal to calendar order
	// across the October boundary.
	var rows []seasonal.Row
	for m := time.January; m <= time.December; m++ {
		rows = append(rows, seasonal.Row{
			Date: time.Date(2015, m, 15, 0, 0, 0, 0, time.UTC), TempF: 70, Holiday: "none",
		})
	}

	d, err := BuildDesign("energy ~ month", &seasonal.ModelData{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"month=02", "month=03", "month=04", "month=05", "month=06", "month=07",
		"month=08", "month=09", "month=10", "month=11", "month=12",
	}, d.Columns)
}

func TestBuildDesign_Errors(t *testing.T) {
	md := &seasonal.ModelData{Rows: dailyRows(
		time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), 2,
		func(i int) float64 { return 70 },
	)}

	_, err := BuildDesign("no tilde here", md)
	assert.Error(t, err)

	_, err = BuildDesign("energy ~ CDD + bogus", md)
	assert.Error(t, err)

	_, err = BuildDesign("energy ~ month*CDD", md)
	assert.Error(t, err)

	_, err = BuildDesign("energy ~ CDD + ", md)
	assert.Error(t, err)
}
