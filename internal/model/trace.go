package model

import "fmt"

// RecordAdapter deserializes raw meter records into a trace series. It is
// implemented outside this package and called exactly once during trace
// construction when records are supplied instead of a prebuilt series.
type RecordAdapter interface {
	ToSeries(records any) (Series, error)
}

// TraceOptions selects exactly one of the three EnergyTrace construction
// paths: a prebuilt series plus unit, raw records plus an adapter plus
// unit, or a placeholder. Unused fields must be left at their zero values.
type TraceOptions struct {
	Data        Series
	Unit        string
	Records     any
	Adapter     RecordAdapter
	Placeholder bool
}

// EnergyTrace is a validated, unit-normalized container for one labeled
// time series of energy readings.
type EnergyTrace struct {
	Interpretation Interpretation
	Unit           Unit
	UnitMultiplier float64
	Placeholder    bool

	// Data holds unit-scaled observations. It is owned by the trace and
	// must not be modified by callers.
	Data Series
}

// NewEnergyTrace constructs a trace through one of the three paths in
// TraceOptions. Values are scaled once by the unit multiplier; the input
// series is copied, never aliased.
func NewEnergyTrace(interpretation Interpretation, opts TraceOptions) (*EnergyTrace, error) {
	interp, err := ParseInterpretation(string(interpretation))
	if err != nil {
		return nil, err
	}

	t := &EnergyTrace{Interpretation: interp}

	switch {
	case opts.Placeholder && opts.Data == nil && opts.Records == nil && opts.Adapter == nil:
		t.Placeholder = true
		return t, nil

	case opts.Records != nil && opts.Adapter != nil && opts.Data == nil && !opts.Placeholder:
		if err := t.setUnit(opts.Unit); err != nil {
			return nil, err
		}
		data, err := opts.Adapter.ToSeries(opts.Records)
		if err != nil {
			return nil, fmt.Errorf("deserializing records: %w", err)
		}
		if err := data.Validate(); err != nil {
			return nil, err
		}
		t.Data = data

	case opts.Data != nil && opts.Records == nil && opts.Adapter == nil && !opts.Placeholder:
		if err := t.setUnit(opts.Unit); err != nil {
			return nil, err
		}
		if err := opts.Data.Validate(); err != nil {
			return nil, err
		}
		t.Data = opts.Data.Clone()

	default:
		return nil, fmt.Errorf(
			"%w: supplied data=%t records=%t adapter=%t placeholder=%t; construct with exactly"+
				" one of a series plus unit, records plus adapter plus unit, or placeholder=true",
			ErrInvalidConstruction,
			opts.Data != nil, opts.Records != nil, opts.Adapter != nil, opts.Placeholder)
	}

	// One-time scaling to the canonical unit. NaN period caps pass through.
	for i := range t.Data {
		t.Data[i].Value *= t.UnitMultiplier
	}
	return t, nil
}

func (t *EnergyTrace) setUnit(raw string) error {
	unit, multiplier, err := NormalizeUnit(raw)
	if err != nil {
		return err
	}
	t.Unit = unit
	t.UnitMultiplier = multiplier
	return nil
}

func (t *EnergyTrace) String() string {
	if t.Placeholder {
		return fmt.Sprintf("EnergyTrace(interpretation=%s, placeholder=true)", t.Interpretation)
	}
	return fmt.Sprintf("EnergyTrace(interpretation=%s, unit=%s, rows=%d)",
		t.Interpretation, t.Unit, len(t.Data))
}
