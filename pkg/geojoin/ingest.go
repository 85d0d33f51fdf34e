package geojoin

import (
	"encoding/json"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// typeProbe is used to sniff the top-level "type" member of a GeoJSON
// document before committing to a full FeatureCollection decode, so a
// syntactically valid document of the wrong GeoJSON type (a bare
// Feature or Geometry) can be distinguished from malformed JSON.
type typeProbe struct {
	Type string `json:"type"`
}

// Ingest parses a byte stream as a GeoJSON document and returns the
// indexable features of its top-level FeatureCollection.
//
// A single invalid feature aborts the whole ingest (fail-fast); no
// partial feature set is returned.
func Ingest(data []byte) ([]*Feature, error) {
	var probe typeProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{Err: err}
	}
	if probe.Type != "FeatureCollection" {
		return nil, &FeatureCollectionNotFoundError{}
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		feat, err := featureFromGeoJSON(f)
		if err != nil {
			return nil, err
		}
		features = append(features, feat)
	}
	return features, nil
}

func featureFromGeoJSON(f *geojson.Feature) (*Feature, error) {
	if f.Geometry == nil {
		return nil, &GeometryNotFoundError{}
	}

	geom, err := geometryFromOrb(f.Geometry)
	if err != nil {
		return nil, err
	}

	props, err := propertiesFromGeoJSON(f.Properties)
	if err != nil {
		return nil, err
	}

	return newFeature(geom, props), nil
}

func geometryFromOrb(g orb.Geometry) (Geometry, error) {
	switch v := g.(type) {
	case orb.Polygon:
		if len(v) == 0 || len(v[0]) < 4 {
			return Geometry{}, &InvalidPolygonError{Reason: "outer ring must have at least 4 points"}
		}
		return Geometry{Type: GeometryPolygon, Polygon: v}, nil
	case orb.MultiPolygon:
		if len(v) == 0 {
			return Geometry{}, &InvalidMultiPolygonError{Reason: "must contain at least one polygon"}
		}
		for _, poly := range v {
			if len(poly) == 0 || len(poly[0]) < 4 {
				return Geometry{}, &InvalidMultiPolygonError{Reason: "each polygon's outer ring must have at least 4 points"}
			}
		}
		return Geometry{Type: GeometryMultiPolygon, MultiPolygon: v}, nil
	case orb.Point:
		return Geometry{Type: GeometryPoint, Point: v}, nil
	default:
		return Geometry{}, &InvalidFeatureError{GeoJSONType: g.GeoJSONType()}
	}
}

// propertiesFromGeoJSON converts a GeoJSON properties object into a
// PropertyMap, normalizing numbers to their canonical decimal string
// form and rejecting any non-scalar value.
func propertiesFromGeoJSON(props geojson.Properties) (PropertyMap, error) {
	out := make(PropertyMap, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'g', -1, 64)
		case json.Number:
			out[k] = val.String()
		default:
			return nil, &InvalidPropertyError{Key: k, Value: v}
		}
	}
	return out, nil
}
