package log

// Standard attribute keys for model operations. Using these keys keeps log
// records consistent across packages so that a single filter (e.g. on
// "ml.operation") can follow one model search through dataset construction,
// fitting and selection. Keys follow a hierarchical naming convention
// ("model.name", "data.samples").

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "Model" (OLS), "ForwardSelector", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "select", "transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "linear", "stepwise", "crimedata"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows in the dataset being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of candidate or selected predictor columns.
	FeaturesKey = "data.features"

	// TargetKey names the dependent variable of a regression.
	TargetKey = "data.target"
)

// Model search progress.
const (
	// StepKey is the 1-based index of an accepted forward-selection step.
	StepKey = "search.step"

	// VariableKey names the predictor accepted at a step.
	VariableKey = "search.variable"

	// ScoreKey is the adjusted R² after a step or of a final model.
	ScoreKey = "model.adj_r2"

	// FormulaKey is the R-style formula string of a model.
	FormulaKey = "model.formula"
)

// Performance and error context.
const (
	// DurationMsKey is the elapsed wall time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ErrAttrKey carries an error value; the zerolog backend extracts stack
	// trace details from cockroachdb errors stored under this key.
	ErrAttrKey = "error"

	// StacktraceAttrKey carries a stack trace extracted from an error.
	StacktraceAttrKey = "stacktrace"
)
