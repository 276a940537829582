package ws

import (
	"encoding/json"
	"time"

	"energy_baseline/internal/pipeline"
	"energy_baseline/internal/regression"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeFitRun     = "fit:run"
	TypePredictRun = "predict:run"

	// Server -> Client
	TypeDataLoaded    = "data:loaded"
	TypeFitProgress   = "fit:progress"
	TypeFitResult     = "fit:result"
	TypePredictResult = "predict:result"
	TypeError         = "error"
)

// Client -> Server payloads

type FitRunPayload struct {
	BaseFormula string `json:"base_formula,omitempty"`
}

type PredictRunPayload struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`
}

// Server -> Client payloads

type DataLoadedPayload struct {
	MeterRecords int    `json:"meter_records"`
	Temperatures int    `json:"temperatures"`
	MeterStart   string `json:"meter_start,omitempty"`
	MeterEnd     string `json:"meter_end,omitempty"`
}

type FitProgressPayload struct {
	RunID   string `json:"run_id"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type FitResultPayload struct {
	RunID          string  `json:"run_id"`
	ArtifactID     string  `json:"artifact_id"`
	Formula        string  `json:"formula"`
	NumRows        int     `json:"num_rows"`
	Lambda         float64 `json:"lambda"`
	CVMSE          float64 `json:"cv_mse"`
	TrainR2        float64 `json:"train_r2"`
	NonzeroWeights int     `json:"nonzero_weights"`
}

type PredictedPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Energy float64 `json:"energy"`
}

type PredictResultPayload struct {
	Points []PredictedPoint `json:"points"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func DataLoadedFromStats(s pipeline.Stats) DataLoadedPayload {
	p := DataLoadedPayload{
		MeterRecords: s.MeterRecords,
		Temperatures: s.Temperatures,
	}
	if s.HasMeterData {
		p.MeterStart = s.MeterStart.Format(time.RFC3339)
		p.MeterEnd = s.MeterEnd.Format(time.RFC3339)
	}
	return p
}

func FitResultFromArtifact(runID string, r *regression.FitResult) FitResultPayload {
	nonzero := 0
	for _, w := range r.Weights {
		if w != 0 {
			nonzero++
		}
	}
	return FitResultPayload{
		RunID:          runID,
		ArtifactID:     r.ID,
		Formula:        r.Formula,
		NumRows:        r.NumRows,
		Lambda:         r.Lambda,
		CVMSE:          r.CVMSE,
		TrainR2:        r.TrainR2,
		NonzeroWeights: nonzero,
	}
}

func PredictResultFromDays(days []pipeline.PredictedDay) PredictResultPayload {
	points := make([]PredictedPoint, len(days))
	for i, d := range days {
		points[i] = PredictedPoint{Date: d.Date.Format("2006-01-02"), Energy: d.Energy}
	}
	return PredictResultPayload{Points: points}
}
