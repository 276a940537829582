// Package serializer turns raw meter records into trace series.
package serializer

import (
	"fmt"
	"math"
	"time"

	"energy_baseline/internal/model"
)

// Record is a meter reading over an arbitrary interval. Value is the
// energy consumed between Start and End; a NaN Value marks a missing
// reading and is rejected.
type Record struct {
	Start     time.Time
	End       time.Time
	Value     float64
	Estimated bool
}

// Arbitrary converts arbitrary-interval records into a trace series.
// Contiguous records chain into consecutive period starts; a gap between
// records, and the end of the final record, emit a NaN cap row marking the
// period end. Implements model.RecordAdapter.
type Arbitrary struct{}

// ToSeries deserializes records. The records argument must be []Record in
// chronological order.
func (Arbitrary) ToSeries(records any) (model.Series, error) {
	recs, ok := records.([]Record)
	if !ok {
		return nil, fmt.Errorf("expected []serializer.Record, got %T", records)
	}

	var out model.Series
	for i, r := range recs {
		if r.Start.IsZero() {
			return nil, fmt.Errorf("record %d: missing start", i)
		}
		if r.End.IsZero() {
			return nil, fmt.Errorf("record %d: missing end", i)
		}
		if r.End.Before(r.Start) {
			return nil, fmt.Errorf("record %d: end %s before start %s",
				i, r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
		}
		if math.IsNaN(r.Value) {
			return nil, fmt.Errorf("record %d: missing value", i)
		}

		out = append(out, model.Observation{
			Start:     r.Start,
			Value:     r.Value,
			Estimated: r.Estimated,
		})

		// Cap the period unless the next record starts exactly at End.
		if i == len(recs)-1 || !recs[i+1].Start.Equal(r.End) {
			out = append(out, model.Observation{Start: r.End, Value: math.NaN()})
		}
	}
	return out, nil
}
