package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
)

const percentScale = 100

// TableOptions configures WriteTable.
type TableOptions struct {
	// Heading is printed above the table. Empty omits it.
	Heading string
	NoColor bool
}

// WriteTable prints entries with their share of total.
func WriteTable(w io.Writer, entries []linecount.Entry, total int, o TableOptions) error {
	heading := color.New(color.FgCyan, color.Bold)
	if o.NoColor {
		heading.DisableColor()
	}

	if o.Heading != "" {
		if _, err := heading.Fprintln(w, o.Heading); err != nil {
			return fmt.Errorf("write heading: %w", err)
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{"#", "Language", "Lines", "Share"})

	for i, e := range entries {
		tbl.AppendRow(table.Row{i + 1, e.Language, humanize.Comma(int64(e.Lines)), share(e.Lines, total)})
	}

	tbl.AppendFooter(table.Row{"", "Total", humanize.Comma(int64(total)), ""})

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

func share(lines, total int) string {
	if total <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f%%", float64(lines)/float64(total)*percentScale)
}
