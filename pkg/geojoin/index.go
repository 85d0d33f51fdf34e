package geojoin

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// DefaultK is the default neighbor fan-out used by Find when
// IndexOptions.K is zero.
const DefaultK = 10

const (
	rtreeDimensions  = 2
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

// IndexOptions configures SpatialIndex construction.
type IndexOptions struct {
	// K is the number of nearest-by-MBR candidates Find examines before
	// giving up. Zero means DefaultK.
	K int
}

// SpatialIndex owns a sequence of Features and an R-tree over their
// bounding rectangles, built once by BuildIndex. It is immutable once
// built: it exposes no insert after construction.
type SpatialIndex struct {
	tree     *rtreego.Rtree
	features []*Feature
	k        int
}

// BuildIndex builds a SpatialIndex from features by inserting them one at
// a time into an empty R-tree; no bulk-load constructor is used. Features
// are first sorted by the Hilbert curve index of their centroid so the
// sequential inserts approximate the packing of an STR or Hilbert
// bulk-load, rather than following whatever order the ingester happened
// to emit.
func BuildIndex(features []*Feature, opts IndexOptions) *SpatialIndex {
	k := opts.K
	if k <= 0 {
		k = DefaultK
	}

	ordered := make([]*Feature, len(features))
	copy(ordered, features)
	sortByHilbert(ordered)

	tree := rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren)
	for _, f := range ordered {
		tree.Insert(f)
	}

	return &SpatialIndex{tree: tree, features: ordered, k: k}
}

// Len returns the number of features in the index.
func (idx *SpatialIndex) Len() int { return len(idx.features) }

// K returns the neighbor fan-out this index was built with.
func (idx *SpatialIndex) K() int { return idx.k }

// Features returns all features in the index, in bulk-load order. The
// slice and its elements must not be mutated by callers.
func (idx *SpatialIndex) Features() []*Feature { return idx.features }

// Bounds returns the union of all feature bounding boxes, or the zero
// Bound if the index is empty.
func (idx *SpatialIndex) Bounds() orb.Bound {
	if len(idx.features) == 0 {
		return orb.Bound{}
	}
	b := idx.features[0].Bound()
	for _, f := range idx.features[1:] {
		b = b.Union(f.Bound())
	}
	return b
}

// FindResult is the result of a successful Find: the matched feature's
// properties and its distance (always 0.0, since a hit is by
// definition an exact containment).
type FindResult struct {
	Properties PropertyMap
	Distance   float64
}

// Find locates the feature containing the point (x=longitude,
// y=latitude) using the filter/refine strategy described in the
// package's R-tree design: the K nearest candidates by MBR distance are
// checked in ascending distance order, and the search stops as soon as
// a candidate's MBR excludes the point, since no farther candidate can
// contain it either.
func (idx *SpatialIndex) Find(lon, lat float64) (FindResult, bool) {
	if idx.tree == nil || len(idx.features) == 0 {
		return FindResult{}, false
	}

	point := rtreego.Point{lon, lat}
	candidates := idx.tree.NearestNeighbors(idx.k, point)

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		feature := candidate.(*Feature)
		queryPoint := orb.Point{lon, lat}
		if !feature.bound.Contains(queryPoint) {
			return FindResult{}, false
		}
		if containsExact(feature.geometry, queryPoint) {
			return FindResult{Properties: feature.properties, Distance: 0.0}, true
		}
	}
	return FindResult{}, false
}
