package geojoin

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// PropertyMap is an immutable string-to-string map of feature
// attributes. Numeric GeoJSON property values are normalized to their
// canonical decimal string form at construction time.
type PropertyMap map[string]string

// Get returns the value for key and whether it was present.
func (m PropertyMap) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Feature pairs a Geometry with its minimum bounding rectangle,
// centroid, and property map. Features are created once by the
// ingester and never mutated afterward; the property map is returned by
// reference from index queries and must not be mutated by callers.
type Feature struct {
	geometry   Geometry
	bounds     rtreego.Rect
	bound      orb.Bound
	centroid   orb.Point
	properties PropertyMap
}

// Bounds implements rtreego.Spatial so a Feature can be inserted
// directly into the R-tree.
func (f *Feature) Bounds() rtreego.Rect {
	return f.bounds
}

// Bound returns the feature's exact (unpadded) bounding box.
func (f *Feature) Bound() orb.Bound {
	return f.bound
}

// Properties returns the feature's property map.
func (f *Feature) Properties() PropertyMap {
	return f.properties
}

// Centroid returns the feature's centroid point (x=lon, y=lat).
func (f *Feature) Centroid() orb.Point {
	return f.centroid
}

// Geometry returns the feature's geometry.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// newFeature builds a Feature from a parsed Geometry and its properties,
// computing the MBR and centroid per the package invariants.
func newFeature(g Geometry, props PropertyMap) *Feature {
	b := boundOf(g)
	return &Feature{
		geometry:   g,
		bounds:     boundToRect(b),
		bound:      b,
		centroid:   centroid(g),
		properties: props,
	}
}
