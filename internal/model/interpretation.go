package model

import "fmt"

// Interpretation describes what physical quantity an energy trace measures
// and where it was metered.
type Interpretation string

const (
	ElectricityConsumptionSupplied        Interpretation = "ELECTRICITY_CONSUMPTION_SUPPLIED"
	ElectricityConsumptionTotal           Interpretation = "ELECTRICITY_CONSUMPTION_TOTAL"
	ElectricityConsumptionNet             Interpretation = "ELECTRICITY_CONSUMPTION_NET"
	ElectricityOnSiteGenerationTotal      Interpretation = "ELECTRICITY_ON_SITE_GENERATION_TOTAL"
	ElectricityOnSiteGenerationConsumed   Interpretation = "ELECTRICITY_ON_SITE_GENERATION_CONSUMED"
	ElectricityOnSiteGenerationUnconsumed Interpretation = "ELECTRICITY_ON_SITE_GENERATION_UNCONSUMED"
	NaturalGasConsumptionSupplied         Interpretation = "NATURAL_GAS_CONSUMPTION_SUPPLIED"
)

// Interpretations is the closed set of supported interpretations.
var Interpretations = []Interpretation{
	ElectricityConsumptionSupplied,
	ElectricityConsumptionTotal,
	ElectricityConsumptionNet,
	ElectricityOnSiteGenerationTotal,
	ElectricityOnSiteGenerationConsumed,
	ElectricityOnSiteGenerationUnconsumed,
	NaturalGasConsumptionSupplied,
}

var interpretationSet = func() map[Interpretation]bool {
	m := make(map[Interpretation]bool, len(Interpretations))
	for _, in := range Interpretations {
		m[in] = true
	}
	return m
}()

// ParseInterpretation validates a raw interpretation label against the
// closed set.
func ParseInterpretation(raw string) (Interpretation, error) {
	in := Interpretation(raw)
	if !interpretationSet[in] {
		return "", fmt.Errorf("%w: %q", ErrInvalidInterpretation, raw)
	}
	return in, nil
}
