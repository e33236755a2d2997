package linear

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// Coefficient is one row of the model summary table.
type Coefficient struct {
	Name   string
	Value  float64
	StdErr float64
	TStat  float64
	PValue float64
}

// CoefficientTable returns the fitted terms with standard errors, t
// statistics and two-sided p-values from the Student's t distribution with
// n-p-1 degrees of freedom. The intercept row comes first when present.
func (m *Model) CoefficientTable() ([]Coefficient, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("Model", "CoefficientTable")
	}

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: m.nu}

	values := m.coefSlice()
	names := m.Predictors
	if m.fitIntercept {
		values = append([]float64{m.Intercept}, values...)
		names = append([]string{"(Intercept)"}, names...)
	}

	table := make([]Coefficient, len(values))
	for i, v := range values {
		se := m.StdErrs[i]
		t := errors.SafeDivide(v, se)
		p := 2 * (1 - tdist.CDF(math.Abs(t)))
		table[i] = Coefficient{Name: names[i], Value: v, StdErr: se, TStat: t, PValue: p}
	}
	return table, nil
}

// Summary renders the fitted model as a human-readable report: formula,
// observation count, fit quality and the coefficient table.
func (m *Model) Summary() (string, error) {
	table, err := m.CoefficientTable()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Formula: %s\n", m.Formula())
	fmt.Fprintf(&b, "Observations: %d\n", m.NObs)
	fmt.Fprintf(&b, "R²: %.4f  Adjusted R²: %.4f\n", m.R2, m.AdjR2)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Variable\tCoefficient\tStdErr\tt-stat\tp-value")
	for _, row := range table {
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.3f\t%.4f\n",
			row.Name, row.Value, row.StdErr, row.TStat, row.PValue)
	}
	if err := w.Flush(); err != nil {
		return "", errors.Wrap(err, "linear.Summary: flushing table")
	}
	return b.String(), nil
}
