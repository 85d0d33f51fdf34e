package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/gajzenman/geojoin/pkg/geojoin"
	"github.com/spf13/cobra"
)

func joinCmd() *cobra.Command {
	var (
		indexPath   string
		geoFile     string
		inputPath   string
		outputPath  string
		delimiter   string
		latitude    int
		longitude   int
		properties  []string
		withHeader  bool
		writeStatus bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a delimited file against a spatial index by point containment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (indexPath == "") == (geoFile == "") {
				return fmt.Errorf("exactly one of --index or --geo-file must be given")
			}
			if len(properties) == 0 {
				return fmt.Errorf("at least one --properties key is required")
			}
			if latitude < 1 || longitude < 1 {
				return fmt.Errorf("--latitude and --longitude are 1-based and must be positive")
			}
			return runJoin(joinParams{
				indexPath:   indexPath,
				geoFile:     geoFile,
				inputPath:   inputPath,
				outputPath:  outputPath,
				delimiter:   delimiter,
				latIdx:      latitude - 1,
				lonIdx:      longitude - 1,
				properties:  properties,
				withHeader:  withHeader,
				writeStatus: writeStatus,
				quiet:       quiet,
			})
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "path to a serialized index")
	cmd.Flags().StringVar(&geoFile, "geo-file", "", "GeoJSON FeatureCollection to index in memory instead of --index")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "delimited input file (default stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "joined output file (default stdout)")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "\t", "field delimiter for input and output")
	cmd.Flags().IntVar(&latitude, "latitude", 0, "1-based column number of the latitude field (required)")
	cmd.Flags().IntVar(&longitude, "longitude", 0, "1-based column number of the longitude field (required)")
	cmd.Flags().StringSliceVarP(&properties, "properties", "p", nil, "feature property keys to append (required, at least one)")
	cmd.Flags().BoolVar(&withHeader, "with-header", false, "treat the first input row as a header")
	cmd.Flags().BoolVar(&writeStatus, "write-join-status", false, "append a success/error status column")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	cmd.MarkFlagRequired("latitude")
	cmd.MarkFlagRequired("longitude")
	cmd.MarkFlagRequired("properties")

	return cmd
}

type joinParams struct {
	indexPath   string
	geoFile     string
	inputPath   string
	outputPath  string
	delimiter   string
	latIdx      int
	lonIdx      int
	properties  []string
	withHeader  bool
	writeStatus bool
	quiet       bool
}

func runJoin(p joinParams) error {
	if len(p.delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single byte, got %q", p.delimiter)
	}

	idx, err := loadIndex(p.indexPath, p.geoFile)
	if err != nil {
		return err
	}
	log.Printf("geojoin: loaded index with %d features (k=%d)", idx.Len(), idx.K())

	var in io.Reader = os.Stdin
	var inputSize int64
	if p.inputPath != "" {
		f, err := os.Open(p.inputPath)
		if err != nil {
			return fmt.Errorf("opening input %s: %w", p.inputPath, err)
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			inputSize = info.Size()
		}
		in = f
	}

	var out io.Writer = os.Stdout
	if p.outputPath != "" {
		f, err := os.Create(p.outputPath)
		if err != nil {
			return fmt.Errorf("creating output %s: %w", p.outputPath, err)
		}
		defer f.Close()
		out = f
	}

	var reporter geojoin.Progress = geojoin.NopProgress{}
	if !p.quiet && inputSize > 0 {
		reporter = newTermProgress(inputSize)
	}

	start := time.Now()
	stats, err := geojoin.Join(idx, in, out, geojoin.JoinOptions{
		Delimiter:   rune(p.delimiter[0]),
		LatIdx:      p.latIdx,
		LonIdx:      p.lonIdx,
		Properties:  p.properties,
		HasHeader:   p.withHeader,
		WriteStatus: p.writeStatus,
		InputSize:   inputSize,
		Progress:    reporter,
		Logger:      log.Default(),
	})
	if err != nil {
		return fmt.Errorf("joining: %w", err)
	}

	elapsed := time.Since(start).Seconds()
	var rate float64
	if elapsed > 0 {
		rate = float64(stats.TotalRows) / elapsed
	}
	log.Printf("geojoin: processed %d rows (%d errors) in %.1fs, avg %.0f rows/sec",
		stats.TotalRows, stats.ErrorRows, elapsed, rate)
	return nil
}

// loadIndex resolves the --index XOR --geo-file choice: either decode a
// serialized index from disk or ingest and bulk-load a GeoJSON file in
// memory for this run only.
func loadIndex(indexPath, geoFile string) (*geojoin.SpatialIndex, error) {
	if indexPath != "" {
		f, err := os.Open(indexPath)
		if err != nil {
			return nil, fmt.Errorf("opening index %s: %w", indexPath, err)
		}
		defer f.Close()

		idx, err := geojoin.DecodeIndex(f)
		if err != nil {
			return nil, fmt.Errorf("decoding index %s: %w", indexPath, err)
		}
		return idx, nil
	}

	data, err := os.ReadFile(geoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", geoFile, err)
	}
	features, err := geojoin.Ingest(data)
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", geoFile, err)
	}
	return geojoin.BuildIndex(features, geojoin.IndexOptions{}), nil
}

// termProgress renders a bubbles/progress bar to stderr as bytes of
// successfully parsed rows accumulate against the input file's total
// size. It is driven as a static renderer via Model.ViewAs rather than
// as a full Bubble Tea program, since Join's Progress contract is a
// synchronous callback, not an event loop.
type termProgress struct {
	model progress.Model
	total int64
	done  uint64
}

func newTermProgress(total int64) *termProgress {
	return &termProgress{
		model: progress.New(progress.WithDefaultGradient()),
		total: total,
	}
}

func (p *termProgress) Inc(n uint64) {
	p.done += n
	var frac float64
	if p.total > 0 {
		frac = float64(p.done) / float64(p.total)
	}
	if frac > 1 {
		frac = 1
	}
	fmt.Fprintf(os.Stderr, "\r%s", p.model.ViewAs(frac))
}

func (p *termProgress) Finish() {
	fmt.Fprintf(os.Stderr, "\r%s\n", p.model.ViewAs(1))
}
