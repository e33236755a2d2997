package stepwise

import (
	"github.com/stepgo-ml/stepgo/pkg/log"
)

// Option configures a ForwardSelector.
type Option func(*ForwardSelector)

// WithProgress registers a callback invoked once per accepted step, in
// acceptance order.
func WithProgress(fn ProgressFunc) Option {
	return func(fs *ForwardSelector) {
		fs.progress = fn
	}
}

// WithMaxSteps caps the number of accepted variables. Zero (the default)
// means unlimited; the search then terminates on its own once no candidate
// improves the score or the pool is exhausted.
func WithMaxSteps(n int) Option {
	return func(fs *ForwardSelector) {
		fs.maxSteps = n
	}
}

// WithPerfectFitThreshold sets the adjusted R² at which the search raises a
// DegenerateFitWarning and stops. An accepted score this close to 1 on an
// exploratory dataset almost always signals a leaking or duplicated column.
func WithPerfectFitThreshold(threshold float64) Option {
	return func(fs *ForwardSelector) {
		fs.perfectFitThreshold = threshold
	}
}

// WithParallel evaluates each round's candidates concurrently. Candidate
// fits are independent, and scores are collected positionally, so the result
// is identical to the sequential scan.
func WithParallel(enabled bool) Option {
	return func(fs *ForwardSelector) {
		fs.parallel = enabled
	}
}

// WithLogger replaces the default component logger.
func WithLogger(logger log.Logger) Option {
	return func(fs *ForwardSelector) {
		fs.logger = logger
	}
}
