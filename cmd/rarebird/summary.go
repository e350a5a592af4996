package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/couchcryptid/bird-rarity-etl/internal/pipeline"
)

// renderSummary formats the final run accounting as a table. Rounded borders
// only on a real terminal; plain output stays grep-friendly when piped.
func renderSummary(s pipeline.Summary) string {
	tw := table.NewWriter()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.SetTitle("rarebird run summary")
	tw.AppendRows([]table.Row{
		{"files merged", s.FilesMerged},
		{"files skipped", s.FilesSkipped},
		{"rows merged", s.RowsMerged},
		{"rows dropped", s.RowsDropped},
		{"US observations", s.USObservations},
		{"non-US / invalid rows", s.Excluded},
		{"taxonomy entries", s.ReferenceEntries},
		{"singleton species (overall)", s.SingletonsOverall},
		{"singleton species-years", s.SingletonsYearly},
		{"duration", s.Duration.Round(time.Millisecond)},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"overall report", s.OverallPath},
		{"yearly report", s.YearlyPath},
	})

	return tw.Render()
}
