package geojoin

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNewFeatureComputesBoundAndCentroid(t *testing.T) {
	g := Geometry{Type: GeometryPolygon, Polygon: square()}
	f := newFeature(g, PropertyMap{"name": "square"})

	if f.Bound().Min != (orb.Point{0, 0}) || f.Bound().Max != (orb.Point{10, 10}) {
		t.Errorf("unexpected bound: %v", f.Bound())
	}
	if c := f.Centroid(); c[0] != 5 || c[1] != 5 {
		t.Errorf("expected centroid (5,5), got %v", c)
	}
	if name, ok := f.Properties().Get("name"); !ok || name != "square" {
		t.Errorf("expected property name=square, got %q (ok=%v)", name, ok)
	}
}

func TestFeatureBoundsPadsDegeneratePoint(t *testing.T) {
	// A Point geometry has a zero-area bound; newFeature must still pad
	// it into a valid (positive-length) rtreego.Rect via boundToRect so
	// the feature can be inserted into the R-tree at all. boundToRect
	// panics on a non-positive length, so the test fails if padding is
	// missing.
	g := Geometry{Type: GeometryPoint, Point: orb.Point{1, 1}}
	f := newFeature(g, nil)
	_ = f.Bounds()
}

func TestPropertyMapMissingKey(t *testing.T) {
	m := PropertyMap{"a": "1"}
	if _, ok := m.Get("missing"); ok {
		t.Errorf("expected missing key to report ok=false")
	}
}
