package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jengzang/mapmaker-go/internal/repository"
	"github.com/jengzang/mapmaker-go/internal/service"
)

var defaultPoiType string

var importCmd = &cobra.Command{
	Use:   "import-pois <file.geojson>",
	Short: "Load points of interest from a GeoJSON FeatureCollection",
	Long: `Upserts every Point feature of the file into the POI store, keyed by place_id.

Feature properties: name, type, rating, place_id, vicinity, address.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, log, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer log.Sync()
		defer db.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := service.NewImportService(repository.NewPoiRepository(db), log).
			ImportGeoJSON(ctx, f, defaultPoiType)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d points of interest, skipped %d\n", res.Imported, res.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&defaultPoiType, "type", "t", "", "type for features without a type property")
}
