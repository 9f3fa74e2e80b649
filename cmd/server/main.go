package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mapmaker",
	Short: "Thematic route planning and POI heatmap service",
	Long: `Mapmaker plans multi-waypoint routes through points of interest and
aggregates stored POIs into heatmaps.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, importCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
