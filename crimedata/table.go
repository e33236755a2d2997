package crimedata

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/stepgo-ml/stepgo/dataset"
	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// Table accumulates per-tract columns before conversion to a Dataset. Row
// identity is the tract ID; rows are emitted in sorted ID order so the
// resulting dataset is reproducible across runs.
type Table struct {
	ids   []string
	pos   map[string]int
	names []string
	cols  map[string][]float64
}

// NewTable creates a table with one row per tract ID. Duplicate IDs are
// rejected.
func NewTable(ids []string) (*Table, error) {
	if len(ids) == 0 {
		return nil, errors.NewModelError("crimedata.NewTable", "no tract ids", errors.ErrEmptyData)
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	t := &Table{
		ids:  sorted,
		pos:  make(map[string]int, len(sorted)),
		cols: make(map[string][]float64),
	}
	for i, id := range sorted {
		if _, ok := t.pos[id]; ok {
			return nil, errors.NewValidationError("ids", "duplicate tract id", id)
		}
		t.pos[id] = i
	}
	return t, nil
}

// TableFromPolygons creates a table keyed by the key property of the polygon
// layer.
func TableFromPolygons(polygons *geojson.FeatureCollection, key string) (*Table, error) {
	if polygons == nil {
		return nil, errors.NewValueError("crimedata.TableFromPolygons", "nil feature collection")
	}
	ids := make([]string, 0, len(polygons.Features))
	for _, f := range polygons.Features {
		raw, ok := f.Properties[key]
		if !ok {
			return nil, errors.NewValueError("crimedata.TableFromPolygons",
				fmt.Sprintf("polygon feature missing key property %q", key))
		}
		ids = append(ids, fmt.Sprintf("%v", raw))
	}
	return NewTable(ids)
}

// IDs returns the tract IDs in row order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// SetColumn sets a column from per-tract values. Every row must be present:
// the downstream dataset has no missing-value handling, so a gap here is an
// error rather than an implicit zero.
func (t *Table) SetColumn(name string, values map[string]float64) error {
	if _, ok := t.cols[name]; ok {
		return errors.NewColumnError("crimedata.SetColumn", name, errors.ErrDuplicateColumn)
	}
	col := make([]float64, len(t.ids))
	for id, v := range values {
		i, ok := t.pos[id]
		if !ok {
			return errors.NewValidationError("values", "unknown tract id", id)
		}
		col[i] = v
	}
	if len(values) != len(t.ids) {
		return errors.NewValueError("crimedata.SetColumn",
			fmt.Sprintf("column %q covers %d of %d tracts", name, len(values), len(t.ids)))
	}
	t.names = append(t.names, name)
	t.cols[name] = col
	return nil
}

// SetCounts sets a column from join counts. Tracts absent from counts get 0:
// a tract with no matched incidents genuinely has a zero count, unlike a
// missing attribute.
func (t *Table) SetCounts(name string, counts map[string]int) error {
	if _, ok := t.cols[name]; ok {
		return errors.NewColumnError("crimedata.SetCounts", name, errors.ErrDuplicateColumn)
	}
	col := make([]float64, len(t.ids))
	for id, n := range counts {
		i, ok := t.pos[id]
		if !ok {
			return errors.NewValidationError("counts", "unknown tract id", id)
		}
		col[i] = float64(n)
	}
	t.names = append(t.names, name)
	t.cols[name] = col
	return nil
}

// NumericProperty extracts a numeric property from each polygon feature,
// keyed by the key property. JSON numbers decode as float64; anything else
// under prop is an error because the downstream dataset is strictly numeric.
func NumericProperty(polygons *geojson.FeatureCollection, key, prop string) (map[string]float64, error) {
	if polygons == nil {
		return nil, errors.NewValueError("crimedata.NumericProperty", "nil feature collection")
	}
	out := make(map[string]float64, len(polygons.Features))
	for _, f := range polygons.Features {
		rawKey, ok := f.Properties[key]
		if !ok {
			return nil, errors.NewValueError("crimedata.NumericProperty",
				fmt.Sprintf("polygon feature missing key property %q", key))
		}
		id := fmt.Sprintf("%v", rawKey)

		rawVal, ok := f.Properties[prop]
		if !ok {
			return nil, errors.NewValueError("crimedata.NumericProperty",
				fmt.Sprintf("feature %q missing property %q", id, prop))
		}
		v, ok := rawVal.(float64)
		if !ok {
			return nil, errors.NewValueError("crimedata.NumericProperty",
				fmt.Sprintf("feature %q property %q is not numeric", id, prop))
		}
		out[id] = v
	}
	return out, nil
}

// Dataset converts the accumulated columns to a dataset.Dataset, in the
// order the columns were added.
func (t *Table) Dataset() (*dataset.Dataset, error) {
	if len(t.names) == 0 {
		return nil, errors.NewModelError("crimedata.Dataset", "no columns", errors.ErrEmptyData)
	}
	cols := make([][]float64, len(t.names))
	for i, name := range t.names {
		cols[i] = t.cols[name]
	}
	return dataset.New(append([]string(nil), t.names...), cols)
}
