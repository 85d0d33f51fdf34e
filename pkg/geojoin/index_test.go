package geojoin

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
)

func squareFeatureAt(cx, cy, half float64, name string) *Feature {
	poly := orb.Polygon{
		orb.Ring{
			{cx - half, cy - half},
			{cx + half, cy - half},
			{cx + half, cy + half},
			{cx - half, cy + half},
			{cx - half, cy - half},
		},
	}
	return newFeature(Geometry{Type: GeometryPolygon, Polygon: poly}, PropertyMap{"name": name})
}

func TestFindHitInsideSquare(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{})

	result, ok := idx.Find(1, 1)
	if !ok {
		t.Fatalf("expected a hit inside the square")
	}
	if name, _ := result.Properties.Get("name"); name != "square" {
		t.Errorf("expected property name=square, got %q", name)
	}
}

func TestFindMissOutsideSquare(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{})

	if _, ok := idx.Find(100, 100); ok {
		t.Errorf("expected a miss far outside the square")
	}
}

func TestFindHitOnBoundary(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{})

	if _, ok := idx.Find(5, 0); !ok {
		t.Errorf("expected a hit exactly on the boundary")
	}
}

func TestFindMissingPropertyYieldsNotOK(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{})

	result, ok := idx.Find(0, 0)
	if !ok {
		t.Fatalf("expected a hit at the center")
	}
	if _, ok := result.Properties.Get("missing"); ok {
		t.Errorf("expected missing property to report ok=false")
	}
}

func TestFindEmptyIndex(t *testing.T) {
	idx := BuildIndex(nil, IndexOptions{})
	if _, ok := idx.Find(0, 0); ok {
		t.Errorf("expected empty index to always miss")
	}
}

func TestFindBetweenTwoDisjointSquares(t *testing.T) {
	a := squareFeatureAt(-10, 0, 2, "left")
	b := squareFeatureAt(10, 0, 2, "right")
	idx := BuildIndex([]*Feature{a, b}, IndexOptions{K: 2})

	result, ok := idx.Find(10, 0)
	if !ok {
		t.Fatalf("expected a hit in the right square")
	}
	if name, _ := result.Properties.Get("name"); name != "right" {
		t.Errorf("expected property name=right, got %q", name)
	}

	if _, ok := idx.Find(0, 0); ok {
		t.Errorf("expected a miss between the two squares")
	}
}

func TestBuildIndexDefaultK(t *testing.T) {
	idx := BuildIndex([]*Feature{squareFeatureAt(0, 0, 1, "a")}, IndexOptions{})
	if idx.K() != DefaultK {
		t.Errorf("expected default K=%d, got %d", DefaultK, idx.K())
	}
}

func TestIndexBoundsUnionsFeatures(t *testing.T) {
	a := squareFeatureAt(-10, -10, 1, "a")
	b := squareFeatureAt(10, 10, 1, "b")
	idx := BuildIndex([]*Feature{a, b}, IndexOptions{})

	bounds := idx.Bounds()
	if bounds.Min[0] != -11 || bounds.Min[1] != -11 || bounds.Max[0] != 11 || bounds.Max[1] != 11 {
		t.Errorf("unexpected union bounds: %v", bounds)
	}
}

func TestFindManyDisjointSquaresPicksCorrectOne(t *testing.T) {
	var features []*Feature
	for i := 0; i < 50; i++ {
		x := float64(i * 100)
		features = append(features, squareFeatureAt(x, 0, 2, fmt.Sprintf("sq-%d", i)))
	}
	idx := BuildIndex(features, IndexOptions{K: 4})

	result, ok := idx.Find(4300, 0)
	if !ok {
		t.Fatalf("expected a hit in square 43")
	}
	if name, _ := result.Properties.Get("name"); name != "sq-43" {
		t.Errorf("expected property name=sq-43, got %q", name)
	}
}
