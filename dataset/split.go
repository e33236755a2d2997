package dataset

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// SortBy stably reorders all rows in ascending order of the named column.
// The exploratory workflow sorts by the ranking key before Split so each
// 4-row cycle draws train, validate and test rows from the same value range.
func (d *Dataset) SortBy(name string) error {
	i, ok := d.index[name]
	if !ok {
		return errors.NewColumnError("dataset.SortBy", name, errors.ErrColumnNotFound)
	}
	key := d.cols[i]
	order := make([]int, d.rows)
	for r := range order {
		order[r] = r
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key[order[a]] < key[order[b]]
	})
	d.permute(order)
	return nil
}

// Split partitions the rows into train, validate and test sets using a
// repeating 4-row cycle over the current row order: offsets 0 and 1 go to
// train, offset 2 to validate, offset 3 to test. With fewer than 4 rows the
// later partitions come back empty rather than erroring; callers decide
// whether an empty validate or test set is usable.
func (d *Dataset) Split() (train, validate, test *Dataset) {
	var trainIdx, validateIdx, testIdx []int
	for r := 0; r < d.rows; r++ {
		switch r % 4 {
		case 0, 1:
			trainIdx = append(trainIdx, r)
		case 2:
			validateIdx = append(validateIdx, r)
		case 3:
			testIdx = append(testIdx, r)
		}
	}
	train, _ = d.Subset(trainIdx)
	validate, _ = d.Subset(validateIdx)
	test, _ = d.Subset(testIdx)
	return train, validate, test
}

// Shuffle permutes the rows deterministically from seed. It is the
// exploratory alternative to SortBy when a rank-balanced split is not
// wanted.
func (d *Dataset) Shuffle(seed uint64) {
	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(d.rows)
	d.permute(order)
}

// permute reorders every column so that new row i is old row order[i].
func (d *Dataset) permute(order []int) {
	for j := range d.cols {
		col := make([]float64, d.rows)
		for i, r := range order {
			col[i] = d.cols[j][r]
		}
		d.cols[j] = col
	}
}

// Describe returns per-column mean and standard deviation, mainly for the
// progress trace of example programs.
func (d *Dataset) Describe(name string) (mean, std float64, err error) {
	i, ok := d.index[name]
	if !ok {
		return 0, 0, errors.NewColumnError("dataset.Describe", name, errors.ErrColumnNotFound)
	}
	col := d.cols[i]
	if len(col) == 0 {
		return 0, 0, errors.NewModelError("dataset.Describe", "no rows", errors.ErrEmptyData)
	}
	for _, v := range col {
		mean += v
	}
	mean /= float64(len(col))
	for _, v := range col {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(col)))
	return mean, std, nil
}
