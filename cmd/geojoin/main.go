// Command geojoin builds spatial indexes from GeoJSON feature
// collections and joins them against delimited tabular data by
// point-in-polygon containment.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "geojoin",
		Short:         "Join delimited tabular data against a GeoJSON spatial index",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(generateIndexCmd())
	cmd.AddCommand(joinCmd())
	cmd.AddCommand(inspectCmd())
	return cmd
}
