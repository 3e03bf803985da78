package commands

import (
	"os"

	"github.com/spf13/cobra"
	"sitepulse-backend/lib/serviceutil"
	"sitepulse-backend/lib/sqliteutil"
	"sitepulse-backend/lib/tablestore"
	"sitepulse-backend/services/analyse"
)

func init() {
	rootCmd.AddCommand(analyseCmd)
}

var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Runs the growth analyses over the loaded data and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		db, err := sqliteutil.OpenDB("", cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer db.Close()
		store := tablestore.NewSQLite(db)

		rankGrowth, err := analyse.GlobalRankGrowth(cmd.Context(), store)
		if err != nil {
			serviceutil.Fatal("failed to compute global rank growth", err)
		}
		analyse.RenderGrowth(os.Stdout, "Month-on-month global rank growth", rankGrowth)

		visitsGrowth, err := analyse.TotalVisitsGrowth(cmd.Context(), store)
		if err != nil {
			serviceutil.Fatal("failed to compute total visits growth", err)
		}
		analyse.RenderGrowth(os.Stdout, "Month-on-month total visits growth", visitsGrowth)

		ranking, err := analyse.RankByRelativeGrowth(cmd.Context(), store)
		if err != nil {
			serviceutil.Fatal("failed to rank websites", err)
		}
		analyse.RenderRanking(os.Stdout, ranking)
	},
}
