// Package linear implements ordinary least squares regression over named
// dataset columns, with the fit statistics the stepwise search compares
// (adjusted R²) and a coefficient summary table.
package linear

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/stepgo-ml/stepgo/core/model"
	"github.com/stepgo-ml/stepgo/core/parallel"
	"github.com/stepgo-ml/stepgo/dataset"
	"github.com/stepgo-ml/stepgo/metrics"
	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// Model is a fitted ordinary least squares regression of one target column
// on an additive set of predictor columns plus an intercept.
type Model struct {
	model.BaseEstimator

	// Target is the dependent variable column name.
	Target string
	// Predictors are the predictor column names, in formula order.
	Predictors []string

	// Coefficients holds one entry per predictor, aligned with Predictors.
	Coefficients *mat.VecDense
	// Intercept is the fitted constant term (0 when fit without intercept).
	Intercept float64

	// NObs is the number of observations used in fitting.
	NObs int
	// R2 is the coefficient of determination on the training data.
	R2 float64
	// AdjR2 is R2 penalized for the number of predictors.
	AdjR2 float64
	// StdErrs holds the coefficient standard errors, intercept first.
	StdErrs []float64

	fitIntercept bool
	nu           float64 // residual degrees of freedom, for the t distribution
}

// Fit estimates an OLS model of target on predictors over ds. An empty
// predictor list fits the intercept-only model (the mean of the target,
// R² = 0). Perfect collinearity among predictors produces a ModelError
// wrapping ErrSingularMatrix.
func Fit(ds *dataset.Dataset, target string, predictors []string, opts ...Option) (m *Model, err error) {
	defer errors.Recover(&err, "linear.Fit")

	m = &Model{
		Target:       target,
		Predictors:   append([]string(nil), predictors...),
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewModelError("linear.Fit", "empty dataset", errors.ErrEmptyData)
	}
	if !ds.Has(target) {
		return nil, errors.NewColumnError("linear.Fit", target, errors.ErrColumnNotFound)
	}
	if len(predictors) == 0 && !m.fitIntercept {
		return nil, errors.NewModelError("linear.Fit", "no predictors and no intercept", errors.ErrEmptyData)
	}

	y, err := ds.Vector(target)
	if err != nil {
		return nil, err
	}
	n := y.Len()

	X, err := m.designMatrix(ds, n)
	if err != nil {
		return nil, err
	}
	_, cols := X.Dims()
	if n <= cols {
		return nil, errors.NewValueError("linear.Fit",
			"more parameters than observations")
	}

	// Normal equation: beta = (X'X)^-1 X'y
	var xt mat.Dense
	xt.CloneFrom(X.T())

	var xtx mat.Dense
	xtx.Mul(&xt, X)

	var xtxInv mat.Dense
	if invErr := xtxInv.Inverse(&xtx); invErr != nil {
		return nil, errors.NewModelError("linear.Fit", "singular design matrix", errors.ErrSingularMatrix)
	}

	var xty mat.VecDense
	xty.MulVec(&xt, y)

	beta := mat.NewVecDense(cols, nil)
	beta.MulVec(&xtxInv, &xty)

	m.extract(beta)
	m.NObs = n
	m.nu = float64(n - cols)

	m.scoreTraining(X, y, &xtxInv, cols)
	m.SetFitted()
	return m, nil
}

// designMatrix assembles the n×(p+intercept) matrix of predictor columns.
func (m *Model) designMatrix(ds *dataset.Dataset, n int) (*mat.Dense, error) {
	p := len(m.Predictors)
	offset := 0
	if m.fitIntercept {
		offset = 1
	}
	X := mat.NewDense(n, p+offset, nil)

	if m.fitIntercept {
		const parallelThreshold = 1000
		parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				X.Set(i, 0, 1.0)
			}
		})
	}
	for j, name := range m.Predictors {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			X.Set(i, j+offset, col[i])
		}
	}
	return X, nil
}

// extract splits the solved parameter vector into intercept and coefficients.
// The intercept-only model leaves Coefficients nil.
func (m *Model) extract(beta *mat.VecDense) {
	p := len(m.Predictors)
	offset := 0
	if m.fitIntercept {
		m.Intercept = beta.AtVec(0)
		offset = 1
	}
	if p > 0 {
		m.Coefficients = mat.NewVecDense(p, nil)
		for i := 0; i < p; i++ {
			m.Coefficients.SetVec(i, beta.AtVec(i+offset))
		}
	}
}

// scoreTraining computes R², adjusted R² and coefficient standard errors on
// the training data. A target with zero variance scores 0 rather than
// erroring so the intercept-only degenerate case stays well defined.
func (m *Model) scoreTraining(X *mat.Dense, y *mat.VecDense, xtxInv *mat.Dense, cols int) {
	n := y.Len()

	var fitted mat.VecDense
	var betaFull []float64
	if m.fitIntercept {
		betaFull = append([]float64{m.Intercept}, m.coefSlice()...)
	} else {
		betaFull = m.coefSlice()
	}
	fitted.MulVec(X, mat.NewVecDense(len(betaFull), betaFull))

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		tss += (y.AtVec(i) - yMean) * (y.AtVec(i) - yMean)
		r := y.AtVec(i) - fitted.AtVec(i)
		rss += r * r
	}

	if tss == 0 {
		m.R2 = 0
	} else {
		m.R2 = 1 - rss/tss
	}
	m.AdjR2 = metrics.AdjustedR2(m.R2, n, len(m.Predictors))

	// sigma² = RSS / (n - p - 1); StdErr_j = sqrt(sigma² * (X'X)^-1_jj)
	sigma2 := errors.SafeDivide(rss, m.nu)
	m.StdErrs = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.StdErrs[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
	}
}

func (m *Model) coefSlice() []float64 {
	p := len(m.Predictors)
	out := make([]float64, p)
	for i := 0; i < p; i++ {
		out[i] = m.Coefficients.AtVec(i)
	}
	return out
}

// Predict returns one prediction per row of X, whose columns must match the
// fitted predictors in order (no intercept column).
func (m *Model) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("Model", "Predict")
	}
	r, c := X.Dims()
	if c != len(m.Predictors) {
		return nil, errors.NewDimensionError("linear.Predict", len(m.Predictors), c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := m.Intercept
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * m.Coefficients.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})
	return predictions, nil
}

// PredictDataset predicts over the named predictor columns of ds. An empty
// dataset (such as the test partition of a short Split) errors rather than
// panicking in gonum.
func (m *Model) PredictDataset(ds *dataset.Dataset) (*mat.VecDense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("Model", "PredictDataset")
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewModelError("linear.PredictDataset", "empty dataset", errors.ErrEmptyData)
	}
	if len(m.Predictors) == 0 {
		out := mat.NewVecDense(ds.Len(), nil)
		for i := 0; i < ds.Len(); i++ {
			out.SetVec(i, m.Intercept)
		}
		return out, nil
	}
	X, err := ds.Matrix(m.Predictors...)
	if err != nil {
		return nil, err
	}
	pred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(ds.Len(), nil)
	for i := 0; i < ds.Len(); i++ {
		out.SetVec(i, pred.At(i, 0))
	}
	return out, nil
}

// Score returns R² of the prediction over X against y.
func (m *Model) Score(X, y mat.Matrix) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("Model", "Score")
	}
	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	r, _ := y.Dims()
	yVec := mat.NewVecDense(r, nil)
	pVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
		pVec.SetVec(i, yPred.At(i, 0))
	}
	return metrics.R2Score(yVec, pVec)
}

// ScoreDataset returns R² and adjusted R² of the model over ds, which may be
// a different partition than the one the model was fitted on.
func (m *Model) ScoreDataset(ds *dataset.Dataset) (r2, adjR2 float64, err error) {
	if !m.IsFitted() {
		return 0, 0, errors.NewNotFittedError("Model", "ScoreDataset")
	}
	if ds == nil || ds.Len() == 0 {
		return 0, 0, errors.NewModelError("linear.ScoreDataset", "empty dataset", errors.ErrEmptyData)
	}
	y, err := ds.Vector(m.Target)
	if err != nil {
		return 0, 0, err
	}
	pred, err := m.PredictDataset(ds)
	if err != nil {
		return 0, 0, err
	}
	r2, err = metrics.R2Score(y, pred)
	if err != nil {
		return 0, 0, err
	}
	return r2, metrics.AdjustedR2(r2, ds.Len(), len(m.Predictors)), nil
}

// Formula returns the R-style formula string of the model, e.g.
// "y ~ a + b + a:b". The intercept-only model renders as "y ~ 1".
func (m *Model) Formula() string {
	if len(m.Predictors) == 0 {
		return m.Target + " ~ 1"
	}
	return m.Target + " ~ " + strings.Join(m.Predictors, " + ")
}
