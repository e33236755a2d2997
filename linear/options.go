package linear

// Option configures a Model before fitting.
type Option func(*Model)

// WithFitIntercept sets whether the model includes a constant term.
// Defaults to true; the stepwise search always fits with an intercept.
func WithFitIntercept(fit bool) Option {
	return func(m *Model) {
		m.fitIntercept = fit
	}
}
