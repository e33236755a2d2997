package crimedata

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func square(id string, minX, minY float64) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{
		{
			{minX, minY},
			{minX + 1, minY},
			{minX + 1, minY + 1},
			{minX, minY + 1},
			{minX, minY},
		},
	})
	f.Properties["GEOID"] = id
	return f
}

func point(x, y float64, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{x, y})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func TestJoinPoints(t *testing.T) {
	polygons := geojson.NewFeatureCollection()
	polygons.Append(square("A", 0, 0))
	polygons.Append(square("B", 2, 0))

	points := geojson.NewFeatureCollection()
	points.Append(point(0.5, 0.5, nil)) // inside A
	points.Append(point(0.2, 0.8, nil)) // inside A
	points.Append(point(2.5, 0.5, nil)) // inside B
	points.Append(point(5.0, 5.0, nil)) // outside both

	counts, dropped, err := JoinPoints(points, polygons, "GEOID")
	if err != nil {
		t.Fatalf("JoinPoints() error = %v", err)
	}
	if counts["A"] != 2 {
		t.Errorf("counts[A] = %d, want 2", counts["A"])
	}
	if counts["B"] != 1 {
		t.Errorf("counts[B] = %d, want 1", counts["B"])
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestJoinPoints_EmptyPolygonStillCounted(t *testing.T) {
	polygons := geojson.NewFeatureCollection()
	polygons.Append(square("A", 0, 0))
	polygons.Append(square("EMPTY", 10, 10))

	points := geojson.NewFeatureCollection()
	points.Append(point(0.5, 0.5, nil))

	counts, _, err := JoinPoints(points, polygons, "GEOID")
	if err != nil {
		t.Fatalf("JoinPoints() error = %v", err)
	}
	if n, ok := counts["EMPTY"]; !ok || n != 0 {
		t.Errorf("counts[EMPTY] = %d (present=%v), want an explicit 0", n, ok)
	}
}

func TestJoinPoints_MultiPolygon(t *testing.T) {
	mp := geojson.NewFeature(orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
		{{{3, 3}, {4, 3}, {4, 4}, {3, 4}, {3, 3}}},
	})
	mp.Properties["GEOID"] = "M"
	polygons := geojson.NewFeatureCollection()
	polygons.Append(mp)

	points := geojson.NewFeatureCollection()
	points.Append(point(0.5, 0.5, nil))
	points.Append(point(3.5, 3.5, nil))
	points.Append(point(2.0, 2.0, nil)) // between the parts

	counts, dropped, err := JoinPoints(points, polygons, "GEOID")
	if err != nil {
		t.Fatalf("JoinPoints() error = %v", err)
	}
	if counts["M"] != 2 {
		t.Errorf("counts[M] = %d, want 2", counts["M"])
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestJoinPoints_Errors(t *testing.T) {
	polygons := geojson.NewFeatureCollection()
	polygons.Append(square("A", 0, 0))
	points := geojson.NewFeatureCollection()

	t.Run("nil collections", func(t *testing.T) {
		if _, _, err := JoinPoints(nil, polygons, "GEOID"); err == nil {
			t.Error("nil points should fail")
		}
		if _, _, err := JoinPoints(points, nil, "GEOID"); err == nil {
			t.Error("nil polygons should fail")
		}
	})

	t.Run("missing key property", func(t *testing.T) {
		if _, _, err := JoinPoints(points, polygons, "NOPE"); err == nil {
			t.Error("missing key property should fail")
		}
	})

	t.Run("non-polygon geometry in polygon layer", func(t *testing.T) {
		bad := geojson.NewFeatureCollection()
		bad.Append(point(0, 0, map[string]interface{}{"GEOID": "X"}))
		if _, _, err := JoinPoints(points, bad, "GEOID"); err == nil {
			t.Error("point in polygon layer should fail")
		}
	})
}

func TestFilterPoints(t *testing.T) {
	points := geojson.NewFeatureCollection()
	points.Append(point(0, 0, map[string]interface{}{"OFFENSE": "THEFT"}))
	points.Append(point(1, 1, map[string]interface{}{"OFFENSE": "ROBBERY"}))
	points.Append(point(2, 2, map[string]interface{}{"OFFENSE": "THEFT"}))
	points.Append(point(3, 3, nil)) // no property at all

	theft := FilterPoints(points, "OFFENSE", "THEFT")
	if len(theft.Features) != 2 {
		t.Errorf("filtered %d features, want 2", len(theft.Features))
	}

	violent := FilterPointsFunc(points, "OFFENSE", func(v string) bool {
		return v == "ROBBERY" || v == "ASSAULT"
	})
	if len(violent.Features) != 1 {
		t.Errorf("filtered %d features, want 1", len(violent.Features))
	}
}

func TestPropertyValues(t *testing.T) {
	points := geojson.NewFeatureCollection()
	points.Append(point(0, 0, map[string]interface{}{"OFFENSE": "THEFT"}))
	points.Append(point(1, 1, map[string]interface{}{"OFFENSE": "ROBBERY"}))
	points.Append(point(2, 2, map[string]interface{}{"OFFENSE": "THEFT"}))

	got := PropertyValues(points, "OFFENSE")
	want := []string{"THEFT", "ROBBERY"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PropertyValues() = %v, want %v", got, want)
	}
}
