package main

import (
	"fmt"
	"os"

	"github.com/gajzenman/geojoin/pkg/geojoin"
	"github.com/spf13/cobra"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <index-file>",
		Short: "Report the feature count, K, and bounds of a serialized index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	idx, err := geojoin.DecodeIndex(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	b := idx.Bounds()
	fmt.Printf("features: %d\n", idx.Len())
	fmt.Printf("k:        %d\n", idx.K())
	fmt.Printf("bounds:   [%.6f, %.6f] - [%.6f, %.6f]\n", b.Min[0], b.Min[1], b.Max[0], b.Max[1])
	return nil
}
