package geojoin

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"
)

const missingPropertySentinel = "-"

// JoinStats tallies the outcome of a Join run. ErrorRows never exceeds
// TotalRows.
type JoinStats struct {
	TotalRows uint64
	ErrorRows uint64
}

// JoinOptions configures Join.
type JoinOptions struct {
	// Delimiter separates fields in both the input and output streams.
	// Defaults to '\t' when zero.
	Delimiter rune

	// LatIdx and LonIdx are zero-based column indices of the latitude
	// and longitude fields.
	LatIdx, LonIdx int

	// Properties lists, in order, the feature property keys to append
	// as output columns.
	Properties []string

	// HasHeader indicates the first input row is a header to pass
	// through (with Properties, and "status" if WriteStatus, appended).
	HasHeader bool

	// WriteStatus appends a trailing "status" column to every row
	// ("success" or "error").
	WriteStatus bool

	// InputSize is the optional total byte count of the input stream,
	// used only by a caller-supplied Progress to compute a percentage;
	// Join never inspects it itself.
	InputSize int64

	// Progress receives per-row byte increments and a Finish call at
	// end of input. Defaults to NopProgress.
	Progress Progress

	// Logger receives per-row warnings for unparseable rows and
	// coordinates. Defaults to log.Default().
	Logger *log.Logger
}

func (o JoinOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return '\t'
	}
	return o.Delimiter
}

func (o JoinOptions) progress() Progress {
	if o.Progress == nil {
		return NopProgress{}
	}
	return o.Progress
}

func (o JoinOptions) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// Join drives the streaming row-by-row spatial join described in the
// package docs. It preserves input row order on output and recovers
// from per-row parse and coordinate errors by counting them in
// JoinStats rather than aborting the run.
//
// If a write to output fails mid-stream, the loop terminates silently:
// the error is not surfaced in JoinStats and the caller sees a
// truncated output.
func Join(index *SpatialIndex, input io.Reader, output io.Writer, opts JoinOptions) (JoinStats, error) {
	reader := csv.NewReader(input)
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(output)
	writer.Comma = opts.delimiter()

	progress := opts.progress()
	logger := opts.logger()

	if opts.HasHeader {
		if header, err := reader.Read(); err == nil {
			newHeader := append(append([]string{}, header...), opts.Properties...)
			if opts.WriteStatus {
				newHeader = append(newHeader, "status")
			}
			writer.Write(newHeader)
		}
	}

	var stats JoinStats
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.TotalRows++
		if err != nil {
			logger.Printf("geojoin: skipping unreadable row %d: %v", stats.TotalRows, err)
			stats.ErrorRows++
			continue
		}

		newRecord := processRow(index, record, opts, &stats, logger)

		if err := writer.Write(newRecord); err != nil {
			break
		}
		progress.Inc(recordByteSize(record))
	}

	writer.Flush()
	progress.Finish()

	return stats, nil
}

// processRow builds the output record for a single successfully-parsed
// input row, mutating stats.ErrorRows as needed.
func processRow(index *SpatialIndex, record []string, opts JoinOptions, stats *JoinStats, logger *log.Logger) []string {
	lat, latOK := parseField(record, opts.LatIdx)
	lon, lonOK := parseField(record, opts.LonIdx)

	if !latOK || !lonOK {
		stats.ErrorRows++
		logger.Printf("geojoin: row %d has unparseable coordinates", stats.TotalRows)
		return appendErrorRow(record, opts)
	}

	result, ok := index.Find(lon, lat)
	if !ok {
		stats.ErrorRows++
		if !opts.WriteStatus {
			// A miss without status reporting passes the row through
			// unmodified, so output can be ragged.
			return record
		}
		return appendErrorRow(record, opts)
	}

	out := append([]string{}, record...)
	for _, key := range opts.Properties {
		if v, ok := result.Properties.Get(key); ok {
			out = append(out, v)
		} else {
			out = append(out, missingPropertySentinel)
		}
	}
	if opts.WriteStatus {
		out = append(out, "success")
	}
	return out
}

func appendErrorRow(record []string, opts JoinOptions) []string {
	out := append([]string{}, record...)
	for range opts.Properties {
		out = append(out, "")
	}
	if opts.WriteStatus {
		out = append(out, "error")
	}
	return out
}

func parseField(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) {
		return 0, false
	}
	v, err := strconv.ParseFloat(record[idx], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func recordByteSize(record []string) uint64 {
	var n uint64
	for _, field := range record {
		n += uint64(len(field))
	}
	return n
}
