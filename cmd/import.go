package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nplqhub/revise/internal/usecase/catalog"
)

const (
	importInputKey = "catalog.import.input"
	importGzipKey  = "catalog.import.gzip"
)

// importCmd loads a catalog snapshot into the store.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a revision catalog snapshot",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inputPath := viper.GetString(importInputKey)
		gzipEnabled := viper.GetBool(importGzipKey)
		if !gzipEnabled && inputPath != "-" && gzipPath(inputPath) {
			gzipEnabled = true
		}

		service, _, cleanup, err := newCatalogService()
		if err != nil {
			return err
		}
		defer cleanup()

		var reader io.Reader = cmd.InOrStdin()
		if inputPath != "-" {
			file, openErr := os.Open(inputPath)
			if openErr != nil {
				return fmt.Errorf("open snapshot file: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			reader = file
		}

		var opts []catalog.Option
		if gzipEnabled {
			opts = append(opts, catalog.WithGzip())
		}
		return service.Import(cmd.Context(), reader, opts...)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("input", "i", "-", "snapshot path, - for stdin")
	importCmd.Flags().Bool("gzip", false, "treat the snapshot as gzipped")
	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
}
