package dataset

import (
	"math"
	"testing"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

func mustDataset(t *testing.T, names []string, cols [][]float64) *Dataset {
	t.Helper()
	ds, err := New(names, cols)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ds
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		cols      [][]float64
		wantErr   bool
		wantCause error
	}{
		{
			name:  "valid two columns",
			names: []string{"y", "x"},
			cols:  [][]float64{{1, 2, 3}, {4, 5, 6}},
		},
		{
			name:      "no columns",
			names:     nil,
			cols:      nil,
			wantErr:   true,
			wantCause: errors.ErrEmptyData,
		},
		{
			name:      "duplicate name",
			names:     []string{"x", "x"},
			cols:      [][]float64{{1}, {2}},
			wantErr:   true,
			wantCause: errors.ErrDuplicateColumn,
		},
		{
			name:    "length mismatch",
			names:   []string{"y", "x"},
			cols:    [][]float64{{1, 2}, {3}},
			wantErr: true,
		},
		{
			name:    "NaN rejected",
			names:   []string{"x"},
			cols:    [][]float64{{1, math.NaN()}},
			wantErr: true,
		},
		{
			name:    "Inf rejected",
			names:   []string{"x"},
			cols:    [][]float64{{1, math.Inf(1)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("New() error = %v, want cause %v", err, tt.wantCause)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	ds, err := FromRows([]string{"a", "b"}, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	b, err := ds.Column("b")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	want := []float64{2, 4, 6}
	for i, v := range want {
		if b[i] != v {
			t.Errorf("Column(b)[%d] = %v, want %v", i, b[i], v)
		}
	}

	if _, err := FromRows([]string{"a", "b"}, [][]float64{{1, 2}, {3}}); err == nil {
		t.Error("FromRows() with a ragged row should fail")
	}
}

func TestColumnAccess(t *testing.T) {
	ds := mustDataset(t, []string{"y", "x"}, [][]float64{{1, 2}, {3, 4}})

	if !ds.Has("y") || ds.Has("z") {
		t.Error("Has() gave wrong answers")
	}
	if _, err := ds.Column("z"); !errors.Is(err, errors.ErrColumnNotFound) {
		t.Errorf("Column(z) error = %v, want ErrColumnNotFound", err)
	}

	// returned slice is a copy
	col, _ := ds.Column("x")
	col[0] = 99
	again, _ := ds.Column("x")
	if again[0] == 99 {
		t.Error("Column() must return a copy")
	}
}

func TestMatrix(t *testing.T) {
	ds := mustDataset(t, []string{"y", "a", "b"}, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	X, err := ds.Matrix("b", "a")
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	r, c := X.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("Matrix() dims = %dx%d, want 2x2", r, c)
	}
	// column order follows the argument order
	if X.At(0, 0) != 5 || X.At(0, 1) != 3 {
		t.Errorf("Matrix() row 0 = [%v %v], want [5 3]", X.At(0, 0), X.At(0, 1))
	}

	if _, err := ds.Matrix(); err == nil {
		t.Error("Matrix() with no names should fail")
	}
	if _, err := ds.Matrix("nope"); !errors.Is(err, errors.ErrColumnNotFound) {
		t.Errorf("Matrix(nope) error = %v, want ErrColumnNotFound", err)
	}
}

func TestAddColumnAndInteraction(t *testing.T) {
	ds := mustDataset(t, []string{"a", "b"}, [][]float64{{1, 2, 3}, {4, 5, 6}})

	name, err := ds.Interaction("a", "b")
	if err != nil {
		t.Fatalf("Interaction() error = %v", err)
	}
	if name != "a:b" {
		t.Errorf("Interaction() name = %q, want %q", name, "a:b")
	}
	col, _ := ds.Column("a:b")
	want := []float64{4, 10, 18}
	for i, v := range want {
		if col[i] != v {
			t.Errorf("interaction[%d] = %v, want %v", i, col[i], v)
		}
	}

	// second add of the same pair collides
	if _, err := ds.Interaction("a", "b"); !errors.Is(err, errors.ErrDuplicateColumn) {
		t.Errorf("repeated Interaction() error = %v, want ErrDuplicateColumn", err)
	}
	if _, err := ds.Interaction("a", "missing"); !errors.Is(err, errors.ErrColumnNotFound) {
		t.Errorf("Interaction() with missing column error = %v, want ErrColumnNotFound", err)
	}

	if err := ds.AddColumn("c", []float64{1, 2}); err == nil {
		t.Error("AddColumn() with wrong length should fail")
	}
}

func TestApply(t *testing.T) {
	ds := mustDataset(t, []string{"x"}, [][]float64{{1, 4, 9}})

	if err := ds.Apply("x", math.Sqrt); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	col, _ := ds.Column("x")
	want := []float64{1, 2, 3}
	for i, v := range want {
		if math.Abs(col[i]-v) > 1e-12 {
			t.Errorf("Apply result[%d] = %v, want %v", i, col[i], v)
		}
	}

	// a transform producing NaN leaves the column unchanged
	if err := ds.Apply("x", func(v float64) float64 { return math.Log(v - 10) }); err == nil {
		t.Fatal("Apply() producing NaN should fail")
	}
	col, _ = ds.Column("x")
	if col[0] != 1 {
		t.Error("failed Apply() must not modify the column")
	}
}

func TestSubsetAndClone(t *testing.T) {
	ds := mustDataset(t, []string{"x"}, [][]float64{{10, 20, 30, 40}})

	sub, err := ds.Subset([]int{3, 1})
	if err != nil {
		t.Fatalf("Subset() error = %v", err)
	}
	col, _ := sub.Column("x")
	if col[0] != 40 || col[1] != 20 {
		t.Errorf("Subset() col = %v, want [40 20]", col)
	}

	if _, err := ds.Subset([]int{4}); err == nil {
		t.Error("Subset() out of range should fail")
	}

	clone := ds.Clone()
	if err := clone.Apply("x", func(v float64) float64 { return v * 2 }); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	orig, _ := ds.Column("x")
	if orig[0] != 10 {
		t.Error("Clone() must not share storage with the original")
	}
}

func TestVectorAndMatrixOnEmptyDataset(t *testing.T) {
	// a short Split leaves later partitions with zero rows; extracting gonum
	// vectors or matrices from them must error rather than panic
	ds := mustDataset(t, []string{"y", "x"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	_, _, test := ds.Split()
	if test.Len() != 0 {
		t.Fatalf("test partition has %d rows, want 0", test.Len())
	}

	if _, err := test.Vector("y"); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Vector() error = %v, want ErrEmptyData", err)
	}
	if _, err := test.Matrix("x"); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Matrix() error = %v, want ErrEmptyData", err)
	}
}
