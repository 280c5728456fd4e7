package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nplqhub/revise/internal/usecase/catalog"
)

const (
	exportOutputKey = "catalog.export.output"
	exportGzipKey   = "catalog.export.gzip"
)

// exportCmd dumps the revision catalog to a JSON snapshot.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the revision catalog as a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		outputPath := viper.GetString(exportOutputKey)
		gzipEnabled := viper.GetBool(exportGzipKey)
		if !gzipEnabled && outputPath != "-" && gzipPath(outputPath) {
			gzipEnabled = true
		}

		service, _, cleanup, err := newCatalogService()
		if err != nil {
			return err
		}
		defer cleanup()

		var writer io.Writer = cmd.OutOrStdout()
		if outputPath != "-" {
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("create snapshot file: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}

		var opts []catalog.Option
		if gzipEnabled {
			opts = append(opts, catalog.WithGzip())
		}
		return service.Export(cmd.Context(), writer, opts...)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "-", "snapshot path, - for stdout")
	exportCmd.Flags().Bool("gzip", false, "gzip the snapshot")
	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
}
