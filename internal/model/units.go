package model

import "fmt"

// Unit is a canonical energy unit.
type Unit string

const (
	UnitKWH   Unit = "KWH"
	UnitTherm Unit = "THERM"
)

type unitNorm struct {
	Unit       Unit
	Multiplier float64
}

// unitNormalization maps raw unit spellings to a canonical unit and the
// multiplier applied once to values on that scale. Lookup is
// case-sensitive over exactly these spellings.
var unitNormalization = map[string]unitNorm{
	"kwh":    {UnitKWH, 1.0},
	"kWh":    {UnitKWH, 1.0},
	"KWH":    {UnitKWH, 1.0},
	"wh":     {UnitKWH, 0.001},
	"Wh":     {UnitKWH, 0.001},
	"WH":     {UnitKWH, 0.001},
	"therm":  {UnitTherm, 1.0},
	"therms": {UnitTherm, 1.0},
	"thm":    {UnitTherm, 1.0},
	"THERM":  {UnitTherm, 1.0},
	"THERMS": {UnitTherm, 1.0},
	"THM":    {UnitTherm, 1.0},
}

// NormalizeUnit resolves a raw unit spelling to its canonical unit and
// value multiplier.
func NormalizeUnit(raw string) (Unit, float64, error) {
	n, ok := unitNormalization[raw]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, raw)
	}
	return n.Unit, n.Multiplier, nil
}
