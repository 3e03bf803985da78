package analyse

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderGrowth writes a month-on-month growth series as a table.
func RenderGrowth(w io.Writer, title string, rows []GrowthRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Website", "Snapshot Date", "Value", "Previous", "Change %"})
	for _, row := range rows {
		t.AppendRow(table.Row{
			row.Website,
			row.SnapshotDate,
			formatNumber(row.Value),
			formatNumber(row.Previous),
			fmt.Sprintf("%+.2f%%", row.ChangePct),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderRanking writes the relative-growth ranking as a table.
func RenderRanking(w io.Writer, rows []RankRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Websites ranked by relative total-visits growth")
	t.AppendHeader(table.Row{"Rank", "Website", "Growth %"})
	for _, row := range rows {
		t.AppendRow(table.Row{
			row.Rank,
			row.Website,
			fmt.Sprintf("%+.2f%%", row.GrowthPct),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
