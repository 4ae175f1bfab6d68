package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/leelawheel/internal/services/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Prepare the quote catalog and image manifest",
	}

	cmd.AddCommand(newCatalogImportCSVCmd())
	cmd.AddCommand(newCatalogScanImagesCmd())

	return cmd
}

func newCatalogImportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-csv <in.csv> [out.json]",
		Short: "Convert a quote spreadsheet export into " + catalog.QuotesFile,
		Long: `Read a CSV export with a quote column and a date column and write it as
quote catalog JSON (default ` + catalog.QuotesFile + `). The delimiter is detected
from the first line and headers are matched case-insensitively.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			quotes, err := catalog.ImportCSV(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			path := outputPath(args, catalog.QuotesFile)
			if err := catalog.WriteJSON(path, quotes); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Wrote %d quotes to %s", len(quotes), path))
			return nil
		},
	}
}

func newCatalogScanImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan-images <image-dir> [manifest.json]",
		Short: "Write the image manifest (default " + catalog.ManifestFile + ") from a directory of card images",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := catalog.ScanImages(args[0])
			if err != nil {
				return err
			}
			if len(images) == 0 {
				return fmt.Errorf("no images found in %s", args[0])
			}

			path := outputPath(args, catalog.ManifestFile)
			if err := catalog.WriteJSON(path, images); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Wrote %d images to %s", len(images), path))
			return nil
		},
	}
}

// outputPath is the optional second argument, or def in the working directory
func outputPath(args []string, def string) string {
	if len(args) > 1 {
		return args[1]
	}
	return def
}
