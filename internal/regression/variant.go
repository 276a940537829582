package regression

import (
	"energy_baseline/internal/model"
	"energy_baseline/internal/seasonal"
	"energy_baseline/internal/weather"
)

// Variant is the capability a model flavor supplies to the fitting
// routine: covariate construction for training and prediction, plus the
// design-matrix formula. The fitter composes with a variant instead of
// subclassing it.
type Variant interface {
	BuildModelData(data model.Series, temps []weather.Reading) (*seasonal.ModelData, error)
	BuildFixtureData(temps []weather.Reading) *seasonal.FixtureData
	SelectFormula(md *seasonal.ModelData, base string) string
}

// FitTrace runs the full pipeline for one trace: build model data, select
// the formula, expand the design and fit.
func FitTrace(v Variant, trace *model.EnergyTrace, temps []weather.Reading, baseFormula string, cfg FitConfig) (*FitResult, error) {
	md, err := v.BuildModelData(trace.Data, temps)
	if err != nil {
		return nil, err
	}
	formula := v.SelectFormula(md, baseFormula)
	design, err := BuildDesign(formula, md)
	if err != nil {
		return nil, err
	}
	return Fit(design, formula, cfg)
}
