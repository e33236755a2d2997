package crimedata

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb/geojson"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

func TestTable_Dataset(t *testing.T) {
	table, err := NewTable([]string{"002", "001", "003"})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	// rows are keyed by ID, so column input order does not matter
	if err := table.SetColumn("population", map[string]float64{
		"001": 100, "002": 200, "003": 300,
	}); err != nil {
		t.Fatalf("SetColumn() error = %v", err)
	}
	if err := table.SetCounts("thefts", map[string]int{"003": 7}); err != nil {
		t.Fatalf("SetCounts() error = %v", err)
	}

	ds, err := table.Dataset()
	if err != nil {
		t.Fatalf("Dataset() error = %v", err)
	}

	if !reflect.DeepEqual(table.IDs(), []string{"001", "002", "003"}) {
		t.Errorf("IDs() = %v, want sorted order", table.IDs())
	}

	pop, _ := ds.Column("population")
	if !reflect.DeepEqual(pop, []float64{100, 200, 300}) {
		t.Errorf("population = %v, want sorted by tract ID", pop)
	}

	// missing tracts in a counts column are genuine zeros
	thefts, _ := ds.Column("thefts")
	if !reflect.DeepEqual(thefts, []float64{0, 0, 7}) {
		t.Errorf("thefts = %v, want [0 0 7]", thefts)
	}
}

func TestTable_Errors(t *testing.T) {
	t.Run("no ids", func(t *testing.T) {
		if _, err := NewTable(nil); !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})

	t.Run("duplicate ids", func(t *testing.T) {
		if _, err := NewTable([]string{"001", "001"}); err == nil {
			t.Error("duplicate IDs should fail")
		}
	})

	table, err := NewTable([]string{"001", "002"})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	t.Run("incomplete attribute column", func(t *testing.T) {
		err := table.SetColumn("x", map[string]float64{"001": 1})
		if err == nil {
			t.Error("a column covering one of two tracts should fail")
		}
	})

	t.Run("unknown tract id", func(t *testing.T) {
		err := table.SetCounts("x", map[string]int{"999": 1})
		if err == nil {
			t.Error("an unknown tract ID should fail")
		}
	})

	t.Run("duplicate column", func(t *testing.T) {
		if err := table.SetCounts("thefts", nil); err != nil {
			t.Fatalf("SetCounts() error = %v", err)
		}
		err := table.SetCounts("thefts", nil)
		if !errors.Is(err, errors.ErrDuplicateColumn) {
			t.Errorf("error = %v, want ErrDuplicateColumn", err)
		}
	})

	t.Run("empty table to dataset", func(t *testing.T) {
		empty, err := NewTable([]string{"001"})
		if err != nil {
			t.Fatalf("NewTable() error = %v", err)
		}
		if _, err := empty.Dataset(); !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})
}

func TestNumericProperty(t *testing.T) {
	polygons := geojson.NewFeatureCollection()
	a := square("A", 0, 0)
	a.Properties["population"] = float64(1200)
	b := square("B", 2, 0)
	b.Properties["population"] = float64(800)
	polygons.Append(a)
	polygons.Append(b)

	got, err := NumericProperty(polygons, "GEOID", "population")
	if err != nil {
		t.Fatalf("NumericProperty() error = %v", err)
	}
	want := map[string]float64{"A": 1200, "B": 800}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NumericProperty() = %v, want %v", got, want)
	}

	t.Run("non-numeric value", func(t *testing.T) {
		c := square("C", 4, 0)
		c.Properties["population"] = "many"
		polygons.Append(c)
		if _, err := NumericProperty(polygons, "GEOID", "population"); err == nil {
			t.Error("a string-valued property should fail")
		}
	})
}

func TestTableFromPolygons(t *testing.T) {
	polygons := geojson.NewFeatureCollection()
	polygons.Append(square("B", 2, 0))
	polygons.Append(square("A", 0, 0))

	table, err := TableFromPolygons(polygons, "GEOID")
	if err != nil {
		t.Fatalf("TableFromPolygons() error = %v", err)
	}
	if !reflect.DeepEqual(table.IDs(), []string{"A", "B"}) {
		t.Errorf("IDs() = %v, want [A B]", table.IDs())
	}
}
