package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"sitepulse-backend/lib/serviceutil"
	"sitepulse-backend/lib/sqliteutil"
	"sitepulse-backend/lib/tablestore"
	"sitepulse-backend/services/analyse"
	"sitepulse-backend/services/extract"
	"sitepulse-backend/services/transform"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the full pipeline: extract, load, analyse.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		ctx := cmd.Context()

		count, err := extract.ExportURL(ctx, extract.ExportOptions{
			URL:         cfg.URL,
			ArchivePath: cfg.Archive,
			UnzipDir:    cfg.UnzipDir,
			CSVPath:     cfg.CSV,
		})
		if err != nil {
			serviceutil.Fatal("failed to export snapshot archive", err)
		}
		slog.Info("exported snapshot rows", "rows", count)

		rows, err := extract.ReadCSV(cfg.CSV)
		if err != nil {
			serviceutil.Fatal("failed to read csv", err)
		}

		db, err := sqliteutil.OpenDB("", cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer db.Close()
		store := tablestore.NewSQLite(db)

		loader := transform.Loader{Store: store}
		result, err := loader.LoadAll(ctx, rows)
		if err != nil {
			serviceutil.Fatal("batch load aborted", err)
		}
		slog.Info("load finished", "loaded", result.Loaded, "failed", result.Failed)

		rankGrowth, err := analyse.GlobalRankGrowth(ctx, store)
		if err != nil {
			serviceutil.Fatal("failed to compute global rank growth", err)
		}
		analyse.RenderGrowth(os.Stdout, "Month-on-month global rank growth", rankGrowth)

		visitsGrowth, err := analyse.TotalVisitsGrowth(ctx, store)
		if err != nil {
			serviceutil.Fatal("failed to compute total visits growth", err)
		}
		analyse.RenderGrowth(os.Stdout, "Month-on-month total visits growth", visitsGrowth)

		ranking, err := analyse.RankByRelativeGrowth(ctx, store)
		if err != nil {
			serviceutil.Fatal("failed to rank websites", err)
		}
		analyse.RenderRanking(os.Stdout, ranking)
	},
}
