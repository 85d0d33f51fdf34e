package geojoin

import (
	"fmt"
	"math/rand"
	"testing"
)

// Benchmark Find's filter/refine search against a grid of disjoint
// squares, for both the hit and miss paths, and the cost of bulk
// loading the index itself.

func gridFeatures(n int) []*Feature {
	features := make([]*Feature, n)
	for i := 0; i < n; i++ {
		x := float64(i%1000) * 10
		y := float64(i/1000) * 10
		features[i] = squareFeatureAt(x, y, 2, fmt.Sprintf("f-%d", i))
	}
	return features
}

func BenchmarkBuildIndex(b *testing.B) {
	features := gridFeatures(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildIndex(features, IndexOptions{})
	}
}

func BenchmarkFindHit(b *testing.B) {
	idx := BuildIndex(gridFeatures(10000), IndexOptions{})
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(rng.Intn(1000)) * 10
		y := float64(rng.Intn(10)) * 10
		idx.Find(x, y)
	}
}

func BenchmarkFindMiss(b *testing.B) {
	idx := BuildIndex(gridFeatures(10000), IndexOptions{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Find(100000, 100000)
	}
}
