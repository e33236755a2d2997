// Package stepwise implements greedy forward-selection model search: a
// linear model is grown one variable at a time, at each round adding the
// candidate column that most improves adjusted R², and stopping as soon as
// no candidate improves it. The search is a hill-climb with no backtracking,
// so it can miss variable combinations that only help jointly; that is the
// intended behavior, not a defect to repair.
package stepwise

import (
	"math"
	"sort"

	"github.com/stepgo-ml/stepgo/core/parallel"
	"github.com/stepgo-ml/stepgo/dataset"
	"github.com/stepgo-ml/stepgo/linear"
	"github.com/stepgo-ml/stepgo/pkg/errors"
	"github.com/stepgo-ml/stepgo/pkg/log"
)

// Step describes one accepted forward-selection step.
type Step struct {
	// Index is the 1-based position of the step in the accepted sequence.
	Index int
	// Variable is the predictor accepted at this step.
	Variable string
	// Score is the adjusted R² of the model after accepting Variable.
	Score float64
	// Formula is the model formula after accepting Variable.
	Formula string
}

// ProgressFunc receives one call per accepted step.
type ProgressFunc func(Step)

// ForwardSelector runs the forward-selection search. The zero value is not
// usable; construct with NewForwardSelector.
type ForwardSelector struct {
	maxSteps            int
	perfectFitThreshold float64
	parallel            bool
	progress            ProgressFunc
	logger              log.Logger
}

// NewForwardSelector creates a selector with the default configuration:
// unlimited steps, sequential candidate evaluation and a degenerate-fit
// threshold of 1-1e-9.
func NewForwardSelector(opts ...Option) *ForwardSelector {
	fs := &ForwardSelector{
		perfectFitThreshold: 1 - 1e-9,
		logger:              log.GetLoggerWithName("stepwise"),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// ForwardSelect is a convenience wrapper: build a selector from opts and fit.
func ForwardSelect(ds *dataset.Dataset, target string, opts ...Option) (*linear.Model, error) {
	return NewForwardSelector(opts...).Fit(ds, target)
}

// Fit searches for an additive model of target over the remaining columns
// of ds and returns the final fitted model.
//
// Every remaining candidate is scored by fitting selected∪{candidate} from
// scratch each round. The maximum adjusted R² wins the round, ties broken
// deterministically in favor of the earlier name in ascending order, and is
// accepted only if it strictly exceeds the current score; otherwise the
// search stops. Candidates whose fit fails (singular design matrix) score
// negative infinity for that round and remain eligible in later rounds.
//
// With zero candidate columns the intercept-only model is returned rather
// than an error, matching the degenerate baseline of adjusted R² = 0.
func (fs *ForwardSelector) Fit(ds *dataset.Dataset, target string) (*linear.Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewModelError("stepwise.Fit", "empty dataset", errors.ErrEmptyData)
	}
	if !ds.Has(target) {
		return nil, errors.NewColumnError("stepwise.Fit", target, errors.ErrColumnNotFound)
	}

	remaining := make([]string, 0, ds.NumColumns()-1)
	for _, name := range ds.Columns() {
		if name != target {
			remaining = append(remaining, name)
		}
	}
	// Ascending name order fixes the tie-break: during the scan only a
	// strictly greater score displaces the incumbent, so among equal scores
	// the earliest name wins. This keeps repeated runs identical.
	sort.Strings(remaining)

	fs.logger.Info("forward selection started",
		log.OperationKey, "select",
		log.TargetKey, target,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, len(remaining),
	)

	var selected []string
	currentScore := 0.0

	for len(remaining) > 0 {
		if fs.maxSteps > 0 && len(selected) >= fs.maxSteps {
			fs.logger.Warn("step cap reached, stopping search",
				log.StepKey, len(selected),
			)
			break
		}

		scores := fs.scoreCandidates(ds, target, selected, remaining)

		bestIdx := -1
		bestScore := math.Inf(-1)
		for i, s := range scores {
			if s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}

		// Greedy acceptance: the round's best must strictly improve on the
		// running score or the search ends. No backtracking.
		if bestIdx < 0 || bestScore <= currentScore {
			break
		}

		variable := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		selected = append(selected, variable)
		currentScore = bestScore

		step := Step{
			Index:    len(selected),
			Variable: variable,
			Score:    currentScore,
			Formula:  formula(target, selected),
		}
		fs.logger.Info("step accepted",
			log.StepKey, step.Index,
			log.VariableKey, step.Variable,
			log.ScoreKey, step.Score,
			log.FormulaKey, step.Formula,
		)
		if fs.progress != nil {
			fs.progress(step)
		}

		if currentScore >= fs.perfectFitThreshold {
			errors.Warn(errors.NewDegenerateFitWarning(step.Formula, currentScore, fs.perfectFitThreshold))
			break
		}
	}

	final, err := linear.Fit(ds, target, selected)
	if err != nil {
		return nil, errors.Wrap(err, "stepwise.Fit: fitting final model")
	}

	fs.logger.Info("forward selection complete",
		log.FormulaKey, final.Formula(),
		log.ScoreKey, final.AdjR2,
		log.FeaturesKey, len(selected),
	)
	if summary, sumErr := final.Summary(); sumErr == nil {
		fs.logger.Debug("final model summary", "summary", summary)
	}
	return final, nil
}

// scoreCandidates fits selected∪{candidate} for every remaining candidate
// and returns the adjusted R² per candidate, positionally aligned with
// remaining. A failed fit scores negative infinity so the round can still
// pick among the other candidates.
func (fs *ForwardSelector) scoreCandidates(ds *dataset.Dataset, target string, selected, remaining []string) []float64 {
	scoreOne := func(i int) float64 {
		predictors := make([]string, 0, len(selected)+1)
		predictors = append(predictors, selected...)
		predictors = append(predictors, remaining[i])

		m, err := linear.Fit(ds, target, predictors)
		if err != nil {
			fs.logger.Debug("candidate fit failed",
				log.VariableKey, remaining[i],
				log.ErrAttrKey, err,
			)
			return math.Inf(-1)
		}
		if err := errors.CheckScalar("stepwise.scoreCandidates", m.AdjR2); err != nil {
			return math.Inf(-1)
		}
		return m.AdjR2
	}

	if fs.parallel {
		// Parallel fits write positionally, so the subsequent in-order scan
		// preserves the deterministic tie-break.
		const threshold = 1
		return parallel.MapFloat64(len(remaining), threshold, scoreOne)
	}

	scores := make([]float64, len(remaining))
	for i := range remaining {
		scores[i] = scoreOne(i)
	}
	return scores
}

func formula(target string, predictors []string) string {
	m := linear.Model{Target: target, Predictors: predictors}
	return m.Formula()
}
