package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"sitepulse-backend/lib/serviceutil"
	"sitepulse-backend/lib/sqliteutil"
	"sitepulse-backend/lib/tablestore"
	"sitepulse-backend/services/extract"
	"sitepulse-backend/services/transform"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validates the extracted CSV and loads it into the database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		rows, err := extract.ReadCSV(cfg.CSV)
		if err != nil {
			serviceutil.Fatal("failed to read csv", err)
		}

		db, err := sqliteutil.OpenDB("", cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer db.Close()

		loader := transform.Loader{Store: tablestore.NewSQLite(db)}
		result, err := loader.LoadAll(cmd.Context(), rows)
		if err != nil {
			serviceutil.Fatal("batch load aborted", err)
		}
		slog.Info("load finished", "loaded", result.Loaded, "failed", result.Failed)
	},
}
