package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"sitepulse-backend/lib/serviceutil"
	"sitepulse-backend/services/extract"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Downloads the snapshot archive and flattens it into a CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		count, err := extract.ExportURL(cmd.Context(), extract.ExportOptions{
			URL:         cfg.URL,
			ArchivePath: cfg.Archive,
			UnzipDir:    cfg.UnzipDir,
			CSVPath:     cfg.CSV,
		})
		if err != nil {
			serviceutil.Fatal("failed to export snapshot archive", err)
		}
		slog.Info("exported snapshot rows", "rows", count, "csv", cfg.CSV)
	},
}
