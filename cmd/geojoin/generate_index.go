package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gajzenman/geojoin/pkg/geojoin"
	"github.com/spf13/cobra"
)

// defaultIndexName is the file written when --output names a directory.
const defaultIndexName = "geo.idx.bin"

func generateIndexCmd() *cobra.Command {
	var (
		geoFile    string
		outputPath string
		force      bool
		k          int
	)

	cmd := &cobra.Command{
		Use:   "generate_index",
		Short: "Build a spatial index from a GeoJSON FeatureCollection and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateIndex(geoFile, outputPath, force, k)
		},
	}

	cmd.Flags().StringVarP(&geoFile, "geo-file", "g", "", "GeoJSON FeatureCollection to index (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", ".", "output file, or a directory to write "+defaultIndexName+" into")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the output file if it already exists")
	cmd.Flags().IntVar(&k, "neighbors", geojoin.DefaultK, "number of nearest-by-bound candidates Find examines")

	cmd.MarkFlagRequired("geo-file")

	return cmd
}

func runGenerateIndex(geoFile, outputPath string, force bool, k int) error {
	data, err := os.ReadFile(geoFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", geoFile, err)
	}

	features, err := geojoin.Ingest(data)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", geoFile, err)
	}
	log.Printf("geojoin: ingested %d features from %s", len(features), geoFile)

	idx := geojoin.BuildIndex(features, geojoin.IndexOptions{K: k})

	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, defaultIndexName)
	}
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outputPath)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := geojoin.EncodeIndex(out, idx); err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	log.Printf("geojoin: wrote index with %d features (k=%d) to %s", idx.Len(), idx.K(), outputPath)
	return nil
}
