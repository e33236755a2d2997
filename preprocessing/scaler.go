// Package preprocessing provides column transforms applied between dataset
// assembly and model fitting: standardization fitted on the training
// partition, and the log1p transform used to tame right-skewed counts.
package preprocessing

import (
	"math"

	"github.com/stepgo-ml/stepgo/core/model"
	"github.com/stepgo-ml/stepgo/dataset"
	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// StandardScaler standardizes named columns to mean 0 and standard
// deviation 1. Statistics are estimated by Fit (on the training partition)
// and reused by Transform on every partition, so validate and test rows are
// scaled with training statistics only.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the fitted per-column means.
	Mean map[string]float64
	// Scale holds the fitted per-column standard deviations.
	Scale map[string]float64

	columns  []string
	withMean bool
	withStd  bool
}

// NewStandardScaler creates a scaler for the given columns. withMean and
// withStd control whether centering and scaling are applied.
func NewStandardScaler(columns []string, withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		columns:  append([]string(nil), columns...),
		withMean: withMean,
		withStd:  withStd,
	}
}

// NewStandardScalerDefault creates a scaler that both centers and scales.
func NewStandardScalerDefault(columns []string) *StandardScaler {
	return NewStandardScaler(columns, true, true)
}

// Fit estimates mean and standard deviation for each configured column.
func (s *StandardScaler) Fit(ds *dataset.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty dataset", errors.ErrEmptyData)
	}
	if len(s.columns) == 0 {
		return errors.NewValidationError("columns", "no columns configured", s.columns)
	}

	s.Mean = make(map[string]float64, len(s.columns))
	s.Scale = make(map[string]float64, len(s.columns))
	for _, name := range s.columns {
		mean, std, err := ds.Describe(name)
		if err != nil {
			return err
		}
		if std == 0 {
			// a constant column carries no signal; unit scale keeps the
			// transform defined
			std = 1
		}
		s.Mean[name] = mean
		s.Scale[name] = std
	}
	s.SetFitted()
	return nil
}

// Transform returns a copy of ds with the configured columns standardized
// using the fitted statistics.
func (s *StandardScaler) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	out := ds.Clone()
	for _, name := range s.columns {
		mean := s.Mean[name]
		scale := s.Scale[name]
		err := out.Apply(name, func(v float64) float64 {
			x := v
			if s.withMean {
				x -= mean
			}
			if s.withStd {
				x /= scale
			}
			return x
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitTransform fits on ds and returns the transformed copy.
func (s *StandardScaler) FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}

// Log1p applies log(1+x) to the named columns in place. Count-like columns
// such as crime tallies are heavily right skewed, so this usually runs
// before fitting.
func Log1p(ds *dataset.Dataset, columns ...string) error {
	for _, name := range columns {
		if err := ds.Apply(name, math.Log1p); err != nil {
			return err
		}
	}
	return nil
}
