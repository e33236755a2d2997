package model

import (
	"gonum.org/v1/gonum/mat"
)

// Predictor is the interface for fitted models that map a design matrix to
// predictions.
type Predictor interface {
	// Predict returns one prediction per row of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a fit-quality score.
type Scorer interface {
	// Score returns the coefficient of determination R² of the prediction.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a fitted regression model satisfies.
type Regressor interface {
	Predictor
	Scorer
	IsFitted() bool
}
