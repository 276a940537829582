package seasonal

// BaseFormula is the design-matrix specification before any
// coverage-gated term group is appended.
const BaseFormula = "energy ~ CDD + HDD"

// Term groups appended by SelectFormula, in order. "num*cat" denotes the
// interaction of a degree-day covariate with a categorical factor.
const (
	monthTerms   = " + CDD*month + HDD*month + month"
	weekdayTerms = " + CDD*weekday + HDD*weekday + weekday"
	holidayTerms = " + holiday_name"
)

// holidayLabelCardinality is the number of distinct labels the configured
// holiday set produces over a full year, including "none". The holiday
// term is enabled only on an exact match: fewer or more observed labels
// than this disables it.
const holidayLabelCardinality = 11

// SelectFormula appends seasonal/calendar term groups to base, each gated
// independently by coverage of the model-data index. A categorical factor
// observed at fewer than its full cardinality of levels would produce
// near-empty dummy categories and an unstable fit, so each group requires
// full coverage. An empty base means BaseFormula.
func (m *Model) SelectFormula(md *ModelData, base string) string {
	if base == "" {
		base = BaseFormula
	}
	formula := base

	months := make(map[int]bool)
	weekdays := make(map[int]bool)
	holidays := make(map[string]bool)
	for _, r := range md.Rows {
		months[int(r.Date.Month())] = true
		weekdays[int(r.Date.Weekday())] = true
		holidays[r.Holiday] = true
	}

	if len(months) >= 12 {
		formula += monthTerms
	}
	if len(weekdays) >= 7 {
		formula += weekdayTerms
	}
	if len(holidays) == holidayLabelCardinality {
		formula += holidayTerms
	}
	return formula
}
