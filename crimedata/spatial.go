package crimedata

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// JoinPoints assigns every point feature to the polygon containing it and
// returns incident counts keyed by the polygon's key property (e.g. the
// tract GEOID). Points falling outside every polygon are counted in the
// returned dropped total; on boundary data that usually means incidents
// geocoded to the city's bounding box fallback.
func JoinPoints(points, polygons *geojson.FeatureCollection, key string) (counts map[string]int, dropped int, err error) {
	if points == nil || polygons == nil {
		return nil, 0, errors.NewValueError("crimedata.JoinPoints", "nil feature collection")
	}

	type indexedPolygon struct {
		id    string
		bound orb.Bound
		geom  orb.Geometry
	}

	polys := make([]indexedPolygon, 0, len(polygons.Features))
	counts = make(map[string]int, len(polygons.Features))
	for _, f := range polygons.Features {
		raw, ok := f.Properties[key]
		if !ok {
			return nil, 0, errors.NewValueError("crimedata.JoinPoints",
				fmt.Sprintf("polygon feature missing key property %q", key))
		}
		id := fmt.Sprintf("%v", raw)

		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			polys = append(polys, indexedPolygon{id: id, bound: f.Geometry.Bound(), geom: f.Geometry})
		default:
			return nil, 0, errors.NewValueError("crimedata.JoinPoints",
				fmt.Sprintf("feature %q is not a polygon geometry", id))
		}
		counts[id] = 0
	}

	for _, f := range points.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, 0, errors.NewValueError("crimedata.JoinPoints", "point layer contains non-point geometry")
		}

		matched := false
		for _, poly := range polys {
			// cheap bound rejection before the ring test
			if !poly.bound.Contains(pt) {
				continue
			}
			if geometryContains(poly.geom, pt) {
				counts[poly.id]++
				matched = true
				break
			}
		}
		if !matched {
			dropped++
		}
	}
	return counts, dropped, nil
}

func geometryContains(geom orb.Geometry, pt orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	default:
		return false
	}
}

// FilterPoints returns the subset of point features whose property name
// equals value. Used to split the incident layer by offense type before
// counting, so each offense becomes its own candidate column.
func FilterPoints(points *geojson.FeatureCollection, name, value string) *geojson.FeatureCollection {
	return FilterPointsFunc(points, name, func(v string) bool { return v == value })
}

// FilterPointsFunc returns the subset of point features whose property name
// satisfies keep.
func FilterPointsFunc(points *geojson.FeatureCollection, name string, keep func(string) bool) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, f := range points.Features {
		if raw, ok := f.Properties[name]; ok && keep(fmt.Sprintf("%v", raw)) {
			out.Append(f)
		}
	}
	return out
}

// PropertyValues returns the distinct values of a string property across the
// point features, in first-seen order.
func PropertyValues(points *geojson.FeatureCollection, name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range points.Features {
		raw, ok := f.Properties[name]
		if !ok {
			continue
		}
		v := fmt.Sprintf("%v", raw)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
