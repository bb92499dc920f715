// Package report renders tree statistics for humans: a terminal table and an
// HTML bar chart of stored intervals per depth.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
)

const percentScale = 100

// StatsTable renders the summary and per-depth tables for stats.
func StatsTable(stats interval.Stats) string {
	summary := table.NewWriter()
	summary.SetStyle(table.StyleLight)
	summary.SetTitle("Interval tree")
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Intervals", humanize.Comma(int64(stats.Intervals))},
		{"Nodes", humanize.Comma(int64(stats.Nodes))},
		{"Leaves", humanize.Comma(int64(stats.Leaves))},
		{"Height", strconv.Itoa(stats.Height)},
		{"Populated nodes", humanize.Comma(int64(stats.Populated))},
		{"Max per node", humanize.Comma(int64(stats.MaxPerNode))},
	})
	summary.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	if len(stats.PerDepth) == 0 {
		return summary.Render()
	}

	depths := table.NewWriter()
	depths.SetStyle(table.StyleLight)
	depths.AppendHeader(table.Row{"Depth", "Intervals", "Share"})

	for depth, count := range stats.PerDepth {
		depths.AppendRow(table.Row{depth, humanize.Comma(int64(count)), share(count, stats.Intervals)})
	}

	depths.AppendFooter(table.Row{"Total", humanize.Comma(int64(stats.Intervals)), ""})
	depths.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	return summary.Render() + "\n" + depths.Render()
}

// WriteStatsTable writes StatsTable(stats) followed by a newline.
func WriteStatsTable(w io.Writer, stats interval.Stats) error {
	_, err := fmt.Fprintln(w, StatsTable(stats))
	if err != nil {
		return fmt.Errorf("write stats table: %w", err)
	}

	return nil
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}

	return fmt.Sprintf("%.1f%%", float64(count)*percentScale/float64(total))
}
