package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locradar/pkg/config"
	"github.com/Sumatoshi-tech/locradar/pkg/langcatalog"
)

type languageRow struct {
	Name       string   `json:"name"`
	Kind       string   `json:"type"`
	Extensions []string `json:"extensions"`
}

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand() *cobra.Command {
	var (
		source   string
		file     string
		all      bool
		asJSON   bool
		extQuery string
	)

	cobraCmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages the catalog recognises",
		Long: `List catalog entries. Only programming languages are counted by scan,
so other kinds are hidden unless --all is given.

Use --ext to see which language an extension resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := langcatalog.Load(source, file)
			if err != nil {
				return fmt.Errorf("load language catalog: %w", err)
			}

			if extQuery != "" {
				return writeClassification(cmd.OutOrStdout(), catalog, extQuery)
			}

			rows := languageRows(catalog, all)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(rows)
			}

			return writeLanguageTable(cmd.OutOrStdout(), rows)
		},
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&source, "catalog", config.DefaultCatalogSource, "Language catalog: bundled or linguist")
	flags.StringVar(&file, "catalog-file", "", "Extra catalog records (.json or .yaml) loaded on top")
	flags.BoolVar(&all, "all", false, "Include data, prose and markup entries")
	flags.BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	flags.StringVar(&extQuery, "ext", "", "Show the entry an extension such as .go resolves to")

	return cobraCmd
}

func languageRows(catalog *langcatalog.Catalog, all bool) []languageRow {
	var rows []languageRow

	for _, e := range catalog.Entries() {
		if !all && !e.IsProgramming() {
			continue
		}

		rows = append(rows, languageRow{Name: e.Name, Kind: e.Kind.String(), Extensions: e.Extensions})
	}

	return rows
}

func writeLanguageTable(w io.Writer, rows []languageRow) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendHeader(table.Row{"Language", "Type", "Extensions"})

	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Name, r.Kind, strings.Join(r.Extensions, " ")})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d languages", len(rows)), "", ""})

	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}

func writeClassification(w io.Writer, catalog *langcatalog.Catalog, ext string) error {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	entry, ok := catalog.Classify(ext)
	if !ok {
		_, err := fmt.Fprintf(w, "%s: unknown\n", ext)

		return err
	}

	counted := "not counted"
	if entry.IsProgramming() {
		counted = "counted"
	}

	_, err := fmt.Fprintf(w, "%s: %s (%s, %s)\n", ext, entry.Name, entry.Kind, counted)

	return err
}
