package geojoin

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeometryType tags the variant held by a Geometry.
type GeometryType int

const (
	// GeometryPolygon holds a single polygon, possibly with holes.
	GeometryPolygon GeometryType = iota
	// GeometryMultiPolygon holds a non-empty sequence of polygons.
	GeometryMultiPolygon
	// GeometryPoint holds a single point.
	GeometryPoint
)

// Geometry is a tagged sum of Polygon, MultiPolygon, and Point, matching
// the shapes a GeoJSON feature may carry for this join. All operations
// are total over the three variants; there is no virtual dispatch.
type Geometry struct {
	Type         GeometryType
	Polygon      orb.Polygon
	MultiPolygon orb.MultiPolygon
	Point        orb.Point
}

// boundOf returns the total minimum bounding rectangle of g as an exact
// orb.Bound (unpadded).
func boundOf(g Geometry) orb.Bound {
	switch g.Type {
	case GeometryPolygon:
		return g.Polygon.Bound()
	case GeometryMultiPolygon:
		return g.MultiPolygon.Bound()
	case GeometryPoint:
		return orb.Bound{Min: g.Point, Max: g.Point}
	default:
		return orb.Bound{}
	}
}

const boundEpsilon = 1e-9

func boundToRect(b orb.Bound) rtreego.Rect {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx < boundEpsilon {
		dx = boundEpsilon
	}
	if dy < boundEpsilon {
		dy = boundEpsilon
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{dx, dy})
	if err != nil {
		// NewRect only fails on non-positive lengths, which boundEpsilon
		// above already rules out.
		panic("geojoin: invalid bound: " + err.Error())
	}
	return rect
}

// centroid returns the geometric center of g: the point itself for
// GeometryPoint, the ring centroid for GeometryPolygon, and the
// area-weighted mean of per-polygon centroids for GeometryMultiPolygon.
func centroid(g Geometry) orb.Point {
	switch g.Type {
	case GeometryPolygon:
		c, _ := planar.CentroidArea(g.Polygon)
		return c
	case GeometryMultiPolygon:
		c, _ := planar.CentroidArea(g.MultiPolygon)
		return c
	case GeometryPoint:
		return g.Point
	default:
		return orb.Point{}
	}
}

// containsExact runs the true geometric containment predicate: boundary
// points count as contained. No floating-point tolerance is applied to
// coordinate comparisons.
func containsExact(g Geometry, p orb.Point) bool {
	switch g.Type {
	case GeometryPolygon:
		return polygonContains(g.Polygon, p)
	case GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			if polygonContains(poly, p) {
				return true
			}
		}
		return false
	case GeometryPoint:
		return g.Point[0] == p[0] && g.Point[1] == p[1]
	default:
		return false
	}
}

// polygonContains tests the outer ring minus holes, treating boundary
// points of the outer ring or of any hole as contained.
func polygonContains(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	if !ringContainsOrOnBoundary(poly[0], p) {
		return false
	}
	for _, hole := range poly[1:] {
		if ringContainsStrict(hole, p) {
			return false
		}
	}
	return true
}

// ringContainsOrOnBoundary is a crossing-number point-in-polygon test
// over a closed ring, with an explicit on-segment check so boundary
// points are always reported as contained.
func ringContainsOrOnBoundary(ring orb.Ring, p orb.Point) bool {
	if onRingBoundary(ring, p) {
		return true
	}
	return crossingNumberContains(ring, p)
}

// ringContainsStrict is used for holes: a point exactly on a hole's
// boundary still belongs to the polygon (the hole's edge is part of the
// filled area), so only strict interior membership excludes it.
func ringContainsStrict(ring orb.Ring, p orb.Point) bool {
	if onRingBoundary(ring, p) {
		return false
	}
	return crossingNumberContains(ring, p)
}

func onRingBoundary(ring orb.Ring, p orb.Point) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if onSegment(a, b, p) {
			return true
		}
	}
	return false
}

func onSegment(a, b, p orb.Point) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if cross != 0 {
		return false
	}
	if p[0] < minF(a[0], b[0]) || p[0] > maxF(a[0], b[0]) {
		return false
	}
	if p[1] < minF(a[1], b[1]) || p[1] > maxF(a[1], b[1]) {
		return false
	}
	return true
}

// crossingNumberContains implements the standard even-odd ray casting
// test, counting crossings of a horizontal ray cast from p to +infinity.
func crossingNumberContains(ring orb.Ring, p orb.Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := ring[j]
		b := ring[i]
		if (b[1] > p[1]) != (a[1] > p[1]) {
			xIntersect := (a[0]-b[0])*(p[1]-b[1])/(a[1]-b[1]) + b[0]
			if p[0] < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
