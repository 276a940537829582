package regression

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"energy_baseline/internal/seasonal"
)

// FitConfig holds hyperparameters for the elastic net search.
type FitConfig struct {
	L1Ratio     float64 // balance between L1 and L2 penalties
	NumLambdas  int     // length of the geometric lambda path
	LambdaRatio float64 // smallest lambda as a fraction of the largest
	Folds       int     // cross-validation folds
	MaxIter     int     // coordinate descent sweeps per lambda
	Tolerance   float64 // convergence threshold on coefficient updates
}

// DefaultFitConfig returns sensible defaults for baseline fitting.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		L1Ratio:     0.5,
		NumLambdas:  50,
		LambdaRatio: 1e-3,
		Folds:       5,
		MaxIter:     1000,
		Tolerance:   1e-6,
	}
}

// FitResult is the JSON-serializable fitted-model artifact. Weights are on
// the original covariate scale; prediction is Intercept + X·Weights.
type FitResult struct {
	ID        string    `json:"id"`
	Formula   string    `json:"formula"`
	Columns   []string  `json:"columns"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Lambda    float64   `json:"lambda"`
	L1Ratio   float64   `json:"l1_ratio"`
	CVMSE     float64   `json:"cv_mse"`
	TrainR2   float64   `json:"train_r2"`
	NumRows   int       `json:"num_rows"`
}

// Fit runs cross-validated elastic net over a design: coefficients are
// estimated by coordinate descent on standardized columns along a
// geometric lambda path, the lambda with the lowest mean validation MSE
// wins, and the final model is refit on all rows.
func Fit(design *Design, formula string, cfg FitConfig) (*FitResult, error) {
	n := len(design.X)
	p := len(design.Columns)
	if n == 0 {
		return nil, errors.New("empty design matrix")
	}
	if len(design.Y) != n {
		return nil, fmt.Errorf("design has %d rows but %d responses", n, len(design.Y))
	}

	cols, means, stds := standardize(design.X, p)
	ymean := mean(design.Y)
	yc := make([]float64, n)
	for i, v := range design.Y {
		yc[i] = v - ymean
	}

	lambdas := lambdaPath(cols, yc, cfg)

	folds := cfg.Folds
	if folds > n {
		folds = n
	}
	cvMSE := make([]float64, len(lambdas))
	if folds >= 2 {
		for f := 0; f < folds; f++ {
			lo := f * n / folds
			hi := (f + 1) * n / folds
			trainCols, trainY := excludeRows(cols, yc, lo, hi)

			w := make([]float64, p)
			for li, lambda := range lambdas {
				coordinateDescent(trainCols, trainY, w, lambda, cfg)
				for i := lo; i < hi; i++ {
					pred := 0.0
					for j := 0; j < p; j++ {
						pred += w[j] * cols[j][i]
					}
					diff := pred - yc[i]
					cvMSE[li] += diff * diff
				}
			}
		}
		for li := range cvMSE {
			cvMSE[li] /= float64(n)
		}
	}

	best := 0
	for li := 1; li < len(lambdas); li++ {
		if cvMSE[li] < cvMSE[best] {
			best = li
		}
	}

	// Refit on the full data, warm-starting down the path.
	w := make([]float64, p)
	for li := 0; li <= best; li++ {
		coordinateDescent(cols, yc, w, lambdas[li], cfg)
	}

	// Map standardized coefficients back to the original covariate scale.
	weights := make([]float64, p)
	intercept := ymean
	for j := 0; j < p; j++ {
		if stds[j] > 0 {
			weights[j] = w[j] / stds[j]
		}
		intercept -= weights[j] * means[j]
	}

	res := &FitResult{
		ID:        uuid.NewString(),
		Formula:   formula,
		Columns:   design.Columns,
		Weights:   weights,
		Intercept: intercept,
		Lambda:    lambdas[best],
		L1Ratio:   cfg.L1Ratio,
		CVMSE:     cvMSE[best],
		NumRows:   n,
	}
	res.TrainR2 = rSquared(design, res)
	return res, nil
}

// Predict evaluates the fitted model over prediction-time covariates.
func (r *FitResult) Predict(fd *seasonal.FixtureData) []float64 {
	rows := fixtureCovariates(fd)
	X := featuresFor(r.Columns, rows)
	out := make([]float64, len(X))
	for i, row := range X {
		p := r.Intercept
		for j, v := range row {
			p += r.Weights[j] * v
		}
		out[i] = p
	}
	return out
}

// Save serializes the artifact to JSON.
func (r *FitResult) Save() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// LoadFitResult deserializes an artifact from JSON.
func LoadFitResult(data []byte) (*FitResult, error) {
	var r FitResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if len(r.Weights) != len(r.Columns) {
		return nil, fmt.Errorf("artifact has %d weights for %d columns", len(r.Weights), len(r.Columns))
	}
	return &r, nil
}

// standardize converts the row-major design into z-scored column-major
// form. Zero-variance columns stay all-zero and keep a zero coefficient.
func standardize(X [][]float64, p int) (cols [][]float64, means, stds []float64) {
	n := len(X)
	cols = make([][]float64, p)
	means = make([]float64, p)
	stds = make([]float64, p)

	for j := 0; j < p; j++ {
		col := make([]float64, n)
		var sum float64
		for i := 0; i < n; i++ {
			col[i] = X[i][j]
			sum += col[i]
		}
		m := sum / float64(n)

		var variance float64
		for i := 0; i < n; i++ {
			d := col[i] - m
			variance += d * d
		}
		s := math.Sqrt(variance / float64(n))

		means[j] = m
		stds[j] = s
		if s > 0 {
			for i := 0; i < n; i++ {
				col[i] = (col[i] - m) / s
			}
		} else {
			for i := 0; i < n; i++ {
				col[i] = 0
			}
		}
		cols[j] = col
	}
	return cols, means, stds
}

// lambdaPath builds a geometric path from the smallest lambda that zeroes
// every coefficient down to its configured fraction.
func lambdaPath(cols [][]float64, yc []float64, cfg FitConfig) []float64 {
	n := float64(len(yc))
	var lambdaMax float64
	for _, col := range cols {
		var dot float64
		for i, v := range col {
			dot += v * yc[i]
		}
		lambdaMax = math.Max(lambdaMax, math.Abs(dot)/n)
	}
	if cfg.L1Ratio > 0 {
		lambdaMax /= cfg.L1Ratio
	}
	if lambdaMax <= 0 {
		lambdaMax = 1
	}

	k := cfg.NumLambdas
	if k < 1 {
		k = 1
	}
	path := make([]float64, k)
	for i := 0; i < k; i++ {
		frac := 0.0
		if k > 1 {
			frac = float64(i) / float64(k-1)
		}
		path[i] = lambdaMax * math.Pow(cfg.LambdaRatio, frac)
	}
	return path
}

// coordinateDescent updates w in place for one lambda. Columns must be
// standardized; yc must be centered.
func coordinateDescent(cols [][]float64, yc []float64, w []float64, lambda float64, cfg FitConfig) {
	n := len(yc)
	p := len(cols)
	if n == 0 || p == 0 {
		return
	}
	l1 := lambda * cfg.L1Ratio
	l2 := lambda * (1 - cfg.L1Ratio)

	// Residual under the warm-start coefficients.
	resid := make([]float64, n)
	copy(resid, yc)
	for j := 0; j < p; j++ {
		if w[j] == 0 {
			continue
		}
		for i, v := range cols[j] {
			resid[i] -= w[j] * v
		}
	}

	for iter := 0; iter < cfg.MaxIter; iter++ {
		var maxDelta float64
		for j := 0; j < p; j++ {
			col := cols[j]

			// Partial residual correlation; standardized columns make the
			// curvature term 1.
			var rho float64
			for i, v := range col {
				rho += v * resid[i]
			}
			rho = rho/float64(n) + w[j]

			next := softThreshold(rho, l1) / (1 + l2)
			if next == w[j] {
				continue
			}
			delta := next - w[j]
			for i, v := range col {
				resid[i] -= delta * v
			}
			w[j] = next
			maxDelta = math.Max(maxDelta, math.Abs(delta))
		}
		if maxDelta < cfg.Tolerance {
			return
		}
	}
}

func softThreshold(x, threshold float64) float64 {
	switch {
	case x > threshold:
		return x - threshold
	case x < -threshold:
		return x + threshold
	default:
		return 0
	}
}

// excludeRows returns column-major copies with rows [lo, hi) removed.
func excludeRows(cols [][]float64, y []float64, lo, hi int) ([][]float64, []float64) {
	out := make([][]float64, len(cols))
	for j, col := range cols {
		trimmed := make([]float64, 0, len(col)-(hi-lo))
		trimmed = append(trimmed, col[:lo]...)
		trimmed = append(trimmed, col[hi:]...)
		out[j] = trimmed
	}
	trimmedY := make([]float64, 0, len(y)-(hi-lo))
	trimmedY = append(trimmedY, y[:lo]...)
	trimmedY = append(trimmedY, y[hi:]...)
	return out, trimmedY
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func rSquared(design *Design, res *FitResult) float64 {
	ymean := mean(design.Y)
	var ssTot, ssRes float64
	for i, row := range design.X {
		pred := res.Intercept
		for j, v := range row {
			pred += res.Weights[j] * v
		}
		d := design.Y[i] - pred
		ssRes += d * d
		t := design.Y[i] - ymean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
