// Package geojoin provides a point-in-polygon spatial join over delimited
// tabular data.
//
// A SpatialIndex is built once from a GeoJSON FeatureCollection (via
// Ingest and BuildIndex) or loaded from a previously serialized index
// file (via DecodeIndex). SpatialIndex.Find answers point-containment queries
// using an R-tree filter/refine strategy: the K nearest
// features by bounding-rectangle distance are checked in order, and the
// search stops as soon as a candidate's MBR excludes the query point.
//
// The Join function drives the streaming tabular pipeline: it reads
// delimited rows, looks up each row's (lat, lon) pair against an index,
// and appends the requested feature properties as new columns.
package geojoin
