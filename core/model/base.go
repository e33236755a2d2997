// Package model provides the shared estimator plumbing used by the fitting
// packages: fitted-state tracking and the interfaces regression components
// implement.
package model

// EstimatorState represents the training state of an estimator.
type EstimatorState int

const (
	// NotFitted means Fit has not completed successfully yet.
	NotFitted EstimatorState = iota
	// Fitted means the estimator holds usable parameters.
	Fitted
)

// BaseEstimator is embedded by every estimator to track fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the not-fitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
