// Package regression fits the baseline model: it expands the formula
// string produced by the seasonal variant into a design matrix and runs a
// cross-validated elastic net over it.
package regression

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"energy_baseline/internal/calendar"
	"energy_baseline/internal/seasonal"
)

// covRow carries the per-day covariates a formula term can reference.
type covRow struct {
	TempF   float64
	CDD     float64
	HDD     float64
	Month   int // 1-12
	Weekday int // 0=Sunday .. 6=Saturday
	Holiday string
}

// Design is a dense design matrix plus the response, ready for fitting.
// Column names are self-describing and parse back into row accessors:
// "CDD" (numeric), "month=3" (level indicator), "CDD:month=3"
// (numeric x indicator interaction).
type Design struct {
	Response string
	Columns  []string
	X        [][]float64 // row-major, len(Columns) wide
	Y        []float64
}

// BuildDesign expands a formula over model data. Categorical factors are
// encoded over the levels observed in the data with the baseline level
// dropped; the intercept is implicit (the fitter centers X and Y).
func BuildDesign(formula string, md *seasonal.ModelData) (*Design, error) {
	rows := make([]covRow, len(md.Rows))
	y := make([]float64, len(md.Rows))
	for i, r := range md.Rows {
		rows[i] = covRow{
			TempF:   r.TempF,
			CDD:     r.CDD,
			HDD:     r.HDD,
			Month:   int(r.Date.Month()),
			Weekday: int(r.Date.Weekday()),
			Holiday: r.Holiday,
		}
		y[i] = r.Energy
	}

	response, terms, err := parseFormula(formula)
	if err != nil {
		return nil, err
	}
	columns, err := expandColumns(terms, rows)
	if err != nil {
		return nil, err
	}

	return &Design{
		Response: response,
		Columns:  columns,
		X:        featuresFor(columns, rows),
		Y:        y,
	}, nil
}

// fixtureCovariates adapts prediction-time rows to the same accessors.
func fixtureCovariates(fd *seasonal.FixtureData) []covRow {
	rows := make([]covRow, len(fd.Rows))
	for i, r := range fd.Rows {
		rows[i] = covRow{
			TempF:   r.TempF,
			CDD:     r.CDD,
			HDD:     r.HDD,
			Month:   int(r.Date.Month()),
			Weekday: int(r.Date.Weekday()),
			Holiday: r.Holiday,
		}
	}
	return rows
}

// parseFormula splits "response ~ term + term + ..." into its parts.
func parseFormula(formula string) (response string, terms []string, err error) {
	lhs, rhs, found := strings.Cut(formula, "~")
	if !found {
		return "", nil, fmt.Errorf("formula %q: missing '~'", formula)
	}
	response = strings.TrimSpace(lhs)
	if response == "" {
		return "", nil, fmt.Errorf("formula %q: empty response", formula)
	}
	for _, t := range strings.Split(rhs, "+") {
		t = strings.TrimSpace(t)
		if t == "" {
			return "", nil, fmt.Errorf("formula %q: empty term", formula)
		}
		terms = append(terms, t)
	}
	return response, terms, nil
}

func isNumericTerm(name string) bool {
	return name == "CDD" || name == "HDD" || name == "tempF"
}

func isCategoricalTerm(name string) bool {
	return name == "month" || name == "weekday" || name == "holiday_name"
}

// expandColumns turns formula terms into concrete column names, in term
// order then level order.
func expandColumns(terms []string, rows []covRow) ([]string, error) {
	var columns []string
	for _, term := range terms {
		switch {
		case isNumericTerm(term):
			columns = append(columns, term)

		case isCategoricalTerm(term):
			for _, level := range observedLevels(term, rows) {
				columns = append(columns, term+"="+level)
			}

		case strings.Contains(term, "*"):
			num, cat, _ := strings.Cut(term, "*")
			num, cat = strings.TrimSpace(num), strings.TrimSpace(cat)
			if !isNumericTerm(num) || !isCategoricalTerm(cat) {
				return nil, fmt.Errorf("unsupported interaction term %q", term)
			}
			for _, level := range observedLevels(cat, rows) {
				columns = append(columns, num+":"+cat+"="+level)
			}

		default:
			return nil, fmt.Errorf("unsupported formula term %q", term)
		}
	}
	return columns, nil
}

// observedLevels lists a factor's observed levels minus the baseline. The
// baseline for holiday_name is "none" when present; for everything else
// the lowest observed level.
func observedLevels(cat string, rows []covRow) []string {
	seen := make(map[string]bool)
	for _, r := range rows {
		seen[categoricalValue(cat, r)] = true
	}
	levels := make([]string, 0, len(seen))
	for level := range seen {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	baseline := levels[0]
	if cat == "holiday_name" && seen[calendar.NoHoliday] {
		baseline = calendar.NoHoliday
	}
	out := levels[:0]
	for _, level := range levels {
		if level != baseline {
			out = append(out, level)
		}
	}
	return out
}

func categoricalValue(cat string, r covRow) string {
	switch cat {
	case "month":
		return fmt.Sprintf("%02d", r.Month)
	case "weekday":
		return strconv.Itoa(r.Weekday)
	default:
		return r.Holiday
	}
}

func numericValue(name string, r covRow) float64 {
	switch name {
	case "CDD":
		return r.CDD
	case "HDD":
		return r.HDD
	default:
		return r.TempF
	}
}

// columnValue evaluates one design column for one row. Levels unseen at
// training time simply contribute zero at prediction time.
func columnValue(col string, r covRow) float64 {
	num, rest, isInteraction := strings.Cut(col, ":")
	if !isInteraction {
		num, rest = "", col
	}
	if cat, level, found := strings.Cut(rest, "="); found {
		if categoricalValue(cat, r) != level {
			return 0
		}
		if num == "" {
			return 1
		}
		return numericValue(num, r)
	}
	return numericValue(rest, r)
}

// featuresFor evaluates the named columns over rows.
func featuresFor(columns []string, rows []covRow) [][]float64 {
	X := make([][]float64, len(rows))
	for i, r := range rows {
		row := make([]float64, len(columns))
		for j, col := range columns {
			row[j] = columnValue(col, r)
		}
		X[i] = row
	}
	return X
}
