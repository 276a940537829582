// Package pipeline wires the store, site configuration and seasonal model
// into the end-to-end fit and predict flows used by the CLI and the
// server.
package pipeline

import (
	"fmt"
	"time"

	"energy_baseline/internal/config"
	"energy_baseline/internal/model"
	"energy_baseline/internal/regression"
	"energy_baseline/internal/seasonal"
	"energy_baseline/internal/serializer"
	"energy_baseline/internal/store"
)

// Pipeline runs the modeling flow for one configured site.
type Pipeline struct {
	Store  *store.Store
	Config *config.Config
}

// Stats summarizes the store contents.
type Stats struct {
	MeterRecords int
	Temperatures int
	MeterStart   time.Time
	MeterEnd     time.Time
	HasMeterData bool
}

// PredictedDay is one forecast row.
type PredictedDay struct {
	Date   time.Time
	Energy float64
}

// Model builds the seasonal variant from configuration.
func (p *Pipeline) Model() *seasonal.Model {
	return &seasonal.Model{
		CoolingBaseTempF: p.Config.Model.CoolingBaseTempF,
		HeatingBaseTempF: p.Config.Model.HeatingBaseTempF,
	}
}

// Trace loads the stored meter records and constructs the site trace
// through the records-plus-adapter path.
func (p *Pipeline) Trace() (*model.EnergyTrace, error) {
	loc, err := p.Config.Location()
	if err != nil {
		return nil, err
	}
	records, err := p.Store.MeterRecords()
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Start = records[i].Start.In(loc)
		records[i].End = records[i].End.In(loc)
	}

	return model.NewEnergyTrace(model.Interpretation(p.Config.Site.Interpretation), model.TraceOptions{
		Records: records,
		Adapter: serializer.Arbitrary{},
		Unit:    p.Config.Site.Unit,
	})
}

// Fit runs the full baseline fit. progress, when non-nil, receives
// stage/message updates as the pipeline advances.
func (p *Pipeline) Fit(baseFormula string, progress func(stage, message string)) (*regression.FitResult, error) {
	report := func(stage, message string) {
		if progress != nil {
			progress(stage, message)
		}
	}
	if baseFormula == "" {
		baseFormula = p.Config.Model.BaseFormula
	}

	report("load", "loading meter records")
	trace, err := p.Trace()
	if err != nil {
		return nil, fmt.Errorf("building trace: %w", err)
	}

	report("load", "loading temperatures")
	loc, err := p.Config.Location()
	if err != nil {
		return nil, err
	}
	temps, err := p.Store.Temperatures(time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	for i := range temps {
		temps[i].Time = temps[i].Time.In(loc)
	}

	m := p.Model()
	report("model-data", "resampling to daily model data")
	md, err := m.BuildModelData(trace.Data, temps)
	if err != nil {
		return nil, err
	}

	formula := m.SelectFormula(md, baseFormula)
	report("formula", formula)

	design, err := regression.BuildDesign(formula, md)
	if err != nil {
		return nil, err
	}

	report("fit", fmt.Sprintf("fitting elastic net over %d days, %d columns", len(md.Rows), len(design.Columns)))
	result, err := regression.Fit(design, formula, regression.DefaultFitConfig())
	if err != nil {
		return nil, err
	}
	report("done", fmt.Sprintf("cv mse %.4f, train r2 %.4f", result.CVMSE, result.TrainR2))
	return result, nil
}

// Predict forecasts daily energy over [start, end) from stored
// temperatures and a fitted artifact.
func (p *Pipeline) Predict(result *regression.FitResult, start, end time.Time) ([]PredictedDay, error) {
	loc, err := p.Config.Location()
	if err != nil {
		return nil, err
	}
	temps, err := p.Store.Temperatures(start, end)
	if err != nil {
		return nil, err
	}
	for i := range temps {
		temps[i].Time = temps[i].Time.In(loc)
	}

	fixture := p.Model().BuildFixtureData(temps)
	values := result.Predict(fixture)

	days := make([]PredictedDay, len(fixture.Rows))
	for i, row := range fixture.Rows {
		days[i] = PredictedDay{Date: row.Date, Energy: values[i]}
	}
	return days, nil
}

// Snapshot reports the store contents.
func (p *Pipeline) Snapshot() (Stats, error) {
	meters, temps, err := p.Store.Counts()
	if err != nil {
		return Stats{}, err
	}
	start, end, ok, err := p.Store.MeterRange()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		MeterRecords: meters,
		Temperatures: temps,
		MeterStart:   start,
		MeterEnd:     end,
		HasMeterData: ok,
	}, nil
}
