// Package diagnostics renders the standard model-checking plots of an
// exploratory regression: residuals against fitted values, observed against
// predicted, and the target distribution. Plots are returned for the caller
// to save; this package does no file I/O.
package diagnostics

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/stepgo-ml/stepgo/dataset"
	"github.com/stepgo-ml/stepgo/linear"
	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// ResidualPlot plots residuals against fitted values with a zero reference
// line. Curvature or fanning here is the usual first sign a predictor needs
// a transform.
func ResidualPlot(m *linear.Model, ds *dataset.Dataset) (*plot.Plot, error) {
	fitted, err := m.PredictDataset(ds)
	if err != nil {
		return nil, err
	}
	y, err := ds.Vector(m.Target)
	if err != nil {
		return nil, err
	}

	points := make(plotter.XYs, y.Len())
	minX, maxX := fitted.AtVec(0), fitted.AtVec(0)
	for i := 0; i < y.Len(); i++ {
		f := fitted.AtVec(i)
		points[i].X = f
		points[i].Y = y.AtVec(i) - f
		if f < minX {
			minX = f
		}
		if f > maxX {
			maxX = f
		}
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: building residual scatter")
	}

	zero, err := plotter.NewLine(plotter.XYs{{X: minX, Y: 0}, {X: maxX, Y: 0}})
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: building zero line")
	}

	p := plot.New()
	p.Title.Text = "Residuals vs Fitted: " + m.Formula()
	p.X.Label.Text = "Fitted"
	p.Y.Label.Text = "Residual"
	p.Add(scatter, zero)
	return p, nil
}

// ObservedVsPredicted plots observed target values against model predictions
// together with the identity line a perfect model would follow.
func ObservedVsPredicted(m *linear.Model, ds *dataset.Dataset) (*plot.Plot, error) {
	predicted, err := m.PredictDataset(ds)
	if err != nil {
		return nil, err
	}
	y, err := ds.Vector(m.Target)
	if err != nil {
		return nil, err
	}

	points := make(plotter.XYs, y.Len())
	minV, maxV := y.AtVec(0), y.AtVec(0)
	for i := 0; i < y.Len(); i++ {
		points[i].X = predicted.AtVec(i)
		points[i].Y = y.AtVec(i)
		for _, v := range []float64{points[i].X, points[i].Y} {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: building prediction scatter")
	}

	identity, err := plotter.NewLine(plotter.XYs{{X: minV, Y: minV}, {X: maxV, Y: maxV}})
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: building identity line")
	}

	p := plot.New()
	p.Title.Text = "Observed vs Predicted: " + m.Formula()
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Observed"
	p.Add(scatter, identity)
	return p, nil
}

// Histogram plots the normalized distribution of one column.
func Histogram(ds *dataset.Dataset, column string, bins int) (*plot.Plot, error) {
	col, err := ds.Column(column)
	if err != nil {
		return nil, err
	}

	h, err := plotter.NewHist(plotter.Values(col), bins)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics: building histogram")
	}
	h.Normalize(1)

	p := plot.New()
	p.Title.Text = "Distribution of " + column
	p.X.Label.Text = column
	p.Add(h)
	return p, nil
}

// DefaultSize is a reasonable square canvas for saving diagnostic plots.
const DefaultSize = 15 * vg.Centimeter
