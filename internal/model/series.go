package model

import (
	"fmt"
	"time"
)

// Observation is one row of a trace series. Start marks the beginning of a
// consumption period; Value is the energy delta between Start and the next
// observation's Start.
type Observation struct {
	Start     time.Time
	Value     float64
	Estimated bool
}

// Series is a time-ordered trace table. Timestamps are period starts and
// need not be uniformly spaced; the final observation's Value is NaN, since
// it only caps the end of the last period. Values are never modified after
// trace construction.
type Series []Observation

// Validate checks that timestamps are strictly increasing.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Start.After(s[i-1].Start) {
			return fmt.Errorf("%w: timestamps not strictly increasing at row %d (%s >= %s)",
				ErrMalformedSeries, i, s[i-1].Start.Format(time.RFC3339), s[i].Start.Format(time.RFC3339))
		}
	}
	return nil
}

// Clone returns a copy whose rows can be modified without touching s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Location returns the timezone of the series index, or UTC when empty.
func (s Series) Location() *time.Location {
	if len(s) == 0 {
		return time.UTC
	}
	return s[0].Start.Location()
}
