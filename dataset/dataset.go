// Package dataset provides the rectangular named-column numeric table the
// fitting and selection packages operate on. Every column is float64 and
// fully defined for all rows; construction rejects anything else so the
// downstream least-squares code never sees missing or non-finite values.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// Dataset is an ordered collection of equally sized float64 columns.
// Column order is construction order and is observable through Columns;
// the stepwise search relies on it only for display, never for tie-breaks.
type Dataset struct {
	names []string
	index map[string]int
	cols  [][]float64
	rows  int
}

// New creates a Dataset from column names and matching value slices.
// Names must be unique and non-empty, columns must all share one length,
// and every value must be finite.
func New(names []string, cols [][]float64) (*Dataset, error) {
	if len(names) == 0 {
		return nil, errors.NewModelError("dataset.New", "no columns", errors.ErrEmptyData)
	}
	if len(names) != len(cols) {
		return nil, errors.NewDimensionError("dataset.New", len(names), len(cols), 1)
	}

	rows := len(cols[0])
	d := &Dataset{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
		cols:  make([][]float64, 0, len(cols)),
		rows:  rows,
	}
	for i, name := range names {
		if err := d.addColumn(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// FromRows creates a Dataset from row-major data, one slice per observation.
func FromRows(names []string, rows [][]float64) (*Dataset, error) {
	cols := make([][]float64, len(names))
	for j := range cols {
		cols[j] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, errors.NewDimensionError("dataset.FromRows", len(names), len(row), 1)
		}
		for j, v := range row {
			cols[j][i] = v
		}
	}
	return New(names, cols)
}

func (d *Dataset) addColumn(name string, values []float64) error {
	if name == "" {
		return errors.NewValidationError("name", "column name must not be empty", name)
	}
	if _, ok := d.index[name]; ok {
		return errors.NewColumnError("dataset.AddColumn", name, errors.ErrDuplicateColumn)
	}
	if len(values) != d.rows {
		return errors.NewDimensionError("dataset.AddColumn", d.rows, len(values), 0)
	}
	if err := errors.CheckValues("dataset.AddColumn", values); err != nil {
		return errors.Wrapf(err, "column %q", name)
	}
	col := make([]float64, len(values))
	copy(col, values)
	d.index[name] = len(d.names)
	d.names = append(d.names, name)
	d.cols = append(d.cols, col)
	return nil
}

// AddColumn appends a new column. The values slice is copied.
func (d *Dataset) AddColumn(name string, values []float64) error {
	return d.addColumn(name, values)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.names)
}

// Columns returns the column names in construction order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Has reports whether a column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named column.
func (d *Dataset) Column(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, errors.NewColumnError("dataset.Column", name, errors.ErrColumnNotFound)
	}
	out := make([]float64, d.rows)
	copy(out, d.cols[i])
	return out, nil
}

// Vector returns the named column as a gonum column vector. A dataset with
// no rows errors rather than handing gonum a zero-length vector, which
// panics; empty Split partitions land here.
func (d *Dataset) Vector(name string) (*mat.VecDense, error) {
	if d.rows == 0 {
		return nil, errors.NewModelError("dataset.Vector", "no rows", errors.ErrEmptyData)
	}
	col, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(col), col), nil
}

// Matrix assembles the named columns into an n×len(names) design matrix,
// in the order given.
func (d *Dataset) Matrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewModelError("dataset.Matrix", "no columns requested", errors.ErrEmptyData)
	}
	if d.rows == 0 {
		return nil, errors.NewModelError("dataset.Matrix", "no rows", errors.ErrEmptyData)
	}
	X := mat.NewDense(d.rows, len(names), nil)
	for j, name := range names {
		i, ok := d.index[name]
		if !ok {
			return nil, errors.NewColumnError("dataset.Matrix", name, errors.ErrColumnNotFound)
		}
		for r := 0; r < d.rows; r++ {
			X.Set(r, j, d.cols[i][r])
		}
	}
	return X, nil
}

// Interaction adds the elementwise product of columns a and b under the
// R-style name "a:b" and returns that name.
func (d *Dataset) Interaction(a, b string) (string, error) {
	ia, ok := d.index[a]
	if !ok {
		return "", errors.NewColumnError("dataset.Interaction", a, errors.ErrColumnNotFound)
	}
	ib, ok := d.index[b]
	if !ok {
		return "", errors.NewColumnError("dataset.Interaction", b, errors.ErrColumnNotFound)
	}
	name := fmt.Sprintf("%s:%s", a, b)
	values := make([]float64, d.rows)
	for r := 0; r < d.rows; r++ {
		values[r] = d.cols[ia][r] * d.cols[ib][r]
	}
	if err := d.addColumn(name, values); err != nil {
		return "", err
	}
	return name, nil
}

// Apply replaces the named column with fn applied elementwise. The result
// must stay finite; a transform that produces NaN or Inf is rejected and the
// column left unchanged.
func (d *Dataset) Apply(name string, fn func(float64) float64) error {
	i, ok := d.index[name]
	if !ok {
		return errors.NewColumnError("dataset.Apply", name, errors.ErrColumnNotFound)
	}
	out := make([]float64, d.rows)
	for r, v := range d.cols[i] {
		out[r] = fn(v)
	}
	if err := errors.CheckValues("dataset.Apply", out); err != nil {
		return errors.Wrapf(err, "column %q", name)
	}
	d.cols[i] = out
	return nil
}

// Subset returns a new Dataset containing the given rows, in order.
// Row indices may repeat.
func (d *Dataset) Subset(rowIdx []int) (*Dataset, error) {
	for _, r := range rowIdx {
		if r < 0 || r >= d.rows {
			return nil, errors.NewValidationError("rowIdx", "row index out of range", r)
		}
	}
	out := &Dataset{
		names: append([]string(nil), d.names...),
		index: make(map[string]int, len(d.names)),
		cols:  make([][]float64, len(d.cols)),
		rows:  len(rowIdx),
	}
	for name, i := range d.index {
		out.index[name] = i
	}
	for j := range d.cols {
		col := make([]float64, len(rowIdx))
		for i, r := range rowIdx {
			col[i] = d.cols[j][r]
		}
		out.cols[j] = col
	}
	return out, nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	idx := make([]int, d.rows)
	for i := range idx {
		idx[i] = i
	}
	out, _ := d.Subset(idx)
	return out
}
