package geojoin

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{K: 3})

	var buf bytes.Buffer
	if err := EncodeIndex(&buf, idx); err != nil {
		t.Fatalf("EncodeIndex failed: %v", err)
	}

	decoded, err := DecodeIndex(&buf)
	if err != nil {
		t.Fatalf("DecodeIndex failed: %v", err)
	}

	if decoded.Len() != idx.Len() {
		t.Errorf("expected %d features, got %d", idx.Len(), decoded.Len())
	}
	if decoded.K() != idx.K() {
		t.Errorf("expected K=%d, got %d", idx.K(), decoded.K())
	}

	result, ok := decoded.Find(1, 1)
	if !ok {
		t.Fatalf("expected decoded index to still answer hits")
	}
	if name, _ := result.Properties.Get("name"); name != "square" {
		t.Errorf("expected property name=square, got %q", name)
	}
}

func TestDecodeIndexBadMagic(t *testing.T) {
	_, err := DecodeIndex(bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0}))
	var wantErr *CorruptIndexError
	if !errors.As(err, &wantErr) {
		t.Fatalf("expected CorruptIndexError, got %v", err)
	}
}

func TestDecodeIndexEmptyStream(t *testing.T) {
	_, err := DecodeIndex(bytes.NewReader(nil))
	var wantErr *CorruptIndexError
	if !errors.As(err, &wantErr) {
		t.Fatalf("expected CorruptIndexError, got %v", err)
	}
}

func TestDecodeIndexVersionMismatch(t *testing.T) {
	f := squareFeatureAt(0, 0, 5, "square")
	idx := BuildIndex([]*Feature{f}, IndexOptions{})

	var buf bytes.Buffer
	if err := EncodeIndex(&buf, idx); err != nil {
		t.Fatalf("EncodeIndex failed: %v", err)
	}
	raw := buf.Bytes()
	// Corrupt the version field (bytes 4-7, little-endian) to a value
	// that will never match codecVersion.
	raw[4] = 0xff

	_, err := DecodeIndex(bytes.NewReader(raw))
	var wantErr *VersionMismatchError
	if !errors.As(err, &wantErr) {
		t.Fatalf("expected VersionMismatchError, got %v", err)
	}
}

func TestRoundTripAnswersMatchOnRandomPoints(t *testing.T) {
	features := []*Feature{
		squareFeatureAt(0, 0, 5, "a"),
		squareFeatureAt(20, 20, 5, "b"),
		squareFeatureAt(-30, 10, 5, "c"),
	}
	idx := BuildIndex(features, IndexOptions{})

	var buf bytes.Buffer
	if err := EncodeIndex(&buf, idx); err != nil {
		t.Fatalf("EncodeIndex failed: %v", err)
	}
	decoded, err := DecodeIndex(&buf)
	if err != nil {
		t.Fatalf("DecodeIndex failed: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		lon := rng.Float64()*100 - 50
		lat := rng.Float64()*100 - 50

		got, gotOK := decoded.Find(lon, lat)
		want, wantOK := idx.Find(lon, lat)
		if gotOK != wantOK {
			t.Fatalf("Find(%v, %v) hit mismatch after round-trip: got %v, want %v", lon, lat, gotOK, wantOK)
		}
		if gotOK {
			gotName, _ := got.Properties.Get("name")
			wantName, _ := want.Properties.Get("name")
			if gotName != wantName {
				t.Fatalf("Find(%v, %v) property mismatch after round-trip: got %q, want %q", lon, lat, gotName, wantName)
			}
		}
	}
}
