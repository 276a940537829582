package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_baseline/internal/serializer"
	"energy_baseline/internal/weather"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func utc(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestMeterRecords_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	records := []serializer.Record{
		{Start: utc(2015, 1, 1, 0), End: utc(2015, 1, 2, 0), Value: 12.5},
		{Start: utc(2015, 1, 2, 0), End: utc(2015, 1, 3, 0), Value: 13.0, Estimated: true},
	}
	n, err := s.InsertMeterRecords(records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := s.MeterRecords()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, loaded[0].Start.Equal(records[0].Start))
	assert.Equal(t, 12.5, loaded[0].Value)
	assert.False(t, loaded[0].Estimated)
	assert.True(t, loaded[1].Estimated)
}

func TestMeterRecords_DuplicatesIgnored(t *testing.T) {
	s := openTestStore(t)

	records := []serializer.Record{
		{Start: utc(2015, 1, 1, 0), End: utc(2015, 1, 2, 0), Value: 12.5},
	}
	n, err := s.InsertMeterRecords(records)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Same period again, even with a different value.
	records[0].Value = 99
	n, err = s.InsertMeterRecords(records)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	loaded, err := s.MeterRecords()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 12.5, loaded[0].Value)
}

func TestMeterRecords_OrderedByStart(t *testing.T) {
	s := openTestStore(t)

	_, err := s.InsertMeterRecords([]serializer.Record{
		{Start: utc(2015, 1, 3, 0), End: utc(2015, 1, 4, 0), Value: 3},
		{Start: utc(2015, 1, 1, 0), End: utc(2015, 1, 2, 0), Value: 1},
		{Start: utc(2015, 1, 2, 0), End: utc(2015, 1, 3, 0), Value: 2},
	})
	require.NoError(t, err)

	loaded, err := s.MeterRecords()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{loaded[0].Value, loaded[1].Value, loaded[2].Value})
}

func TestTemperatures_RangeQuery(t *testing.T) {
	s := openTestStore(t)

	var readings []weather.Reading
	for d := 1; d <= 5; d++ {
		readings = append(readings, weather.Reading{Time: utc(2015, 6, d, 12), TempF: float64(60 + d)})
	}
	n, err := s.InsertTemperatures(readings)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	all, err := s.Temperatures(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	// Half-open window [day 2, day 4).
	window, err := s.Temperatures(utc(2015, 6, 2, 0), utc(2015, 6, 4, 0))
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, 62.0, window[0].TempF)
	assert.Equal(t, 63.0, window[1].TempF)

	tail, err := s.Temperatures(utc(2015, 6, 4, 0), time.Time{})
	require.NoError(t, err)
	assert.Len(t, tail, 2)
}

func TestTemperatures_NonUTCInputNormalized(t *testing.T) {
	s := openTestStore(t)

	// 19:00 -05:00 on June 1 is 00:00 UTC on June 2; a UTC-bounded query
	// must see it on the UTC side of the boundary.
	est := time.FixedZone("EST", -5*3600)
	_, err := s.InsertTemperatures([]weather.Reading{
		{Time: time.Date(2015, 6, 1, 19, 0, 0, 0, est), TempF: 70},
	})
	require.NoError(t, err)

	window, err := s.Temperatures(utc(2015, 6, 2, 0), utc(2015, 6, 3, 0))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, 70.0, window[0].TempF)
}

func TestCountsAndMeterRange(t *testing.T) {
	s := openTestStore(t)

	meters, temps, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 0, meters)
	assert.Equal(t, 0, temps)

	_, _, ok, err := s.MeterRange()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.InsertMeterRecords([]serializer.Record{
		{Start: utc(2015, 1, 1, 0), End: utc(2015, 1, 2, 0), Value: 1},
		{Start: utc(2015, 1, 2, 0), End: utc(2015, 1, 3, 0), Value: 2},
	})
	require.NoError(t, err)
	_, err = s.InsertTemperatures([]weather.Reading{{Time: utc(2015, 1, 1, 12), TempF: 40}})
	require.NoError(t, err)

	meters, temps, err = s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, meters)
	assert.Equal(t, 1, temps)

	start, end, ok, err := s.MeterRange()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, start.Equal(utc(2015, 1, 1, 0)))
	assert.True(t, end.Equal(utc(2015, 1, 3, 0)))
}
