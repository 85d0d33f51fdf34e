package geojoin

import "sort"

// hilbertOrder is the order of the Hilbert curve: centroids are
// quantized to a square grid of side 1<<hilbertOrder before computing
// their Hilbert index. 2^16 steps per axis
// gives ample resolution for packing without meaningfully clustering
// distinct centroids onto the same cell.
const hilbertOrder = 16

// sortByHilbert reorders features in place along the Hilbert space-
// filling curve of their centroids. Inserting an R-tree in this order
// approximates the locality a proper STR or Hilbert-packed bulk load
// would give: nearby features end up in the same tree leaves, which is
// what keeps Find's early-out cheap on average.
func sortByHilbert(features []*Feature) {
	if len(features) == 0 {
		return
	}

	minX, minY := features[0].centroid[0], features[0].centroid[1]
	maxX, maxY := minX, minY
	for _, f := range features[1:] {
		c := f.centroid
		if c[0] < minX {
			minX = c[0]
		}
		if c[0] > maxX {
			maxX = c[0]
		}
		if c[1] < minY {
			minY = c[1]
		}
		if c[1] > maxY {
			maxY = c[1]
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	const side = 1 << hilbertOrder
	keys := make([]uint64, len(features))
	for i, f := range features {
		c := f.centroid
		gx := uint32((c[0] - minX) / spanX * (side - 1))
		gy := uint32((c[1] - minY) / spanY * (side - 1))
		keys[i] = hilbertD(hilbertOrder, gx, gy)
	}

	sort.Sort(&hilbertSortable{features: features, keys: keys})
}

type hilbertSortable struct {
	features []*Feature
	keys     []uint64
}

func (s *hilbertSortable) Len() int { return len(s.features) }
func (s *hilbertSortable) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s *hilbertSortable) Swap(i, j int) {
	s.features[i], s.features[j] = s.features[j], s.features[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// hilbertD converts (x, y) grid coordinates into their distance along a
// Hilbert curve of the given order, using the standard xy2d
// bit-rotation algorithm.
func hilbertD(order uint, x, y uint32) uint64 {
	var rx, ry uint32
	var d uint64
	for s := uint32(1) << (order - 1); s > 0; s >>= 1 {
		if x&s > 0 {
			rx = 1
		} else {
			rx = 0
		}
		if y&s > 0 {
			ry = 1
		} else {
			ry = 0
		}
		d += uint64(s) * uint64(s) * uint64((3*rx)^ry)
		x, y = rotate(s, x, y, rx, ry)
	}
	return d
}

func rotate(s, x, y, rx, ry uint32) (uint32, uint32) {
	if ry == 0 {
		if rx == 1 {
			x = s - 1 - x
			y = s - 1 - y
		}
		x, y = y, x
	}
	return x, y
}
