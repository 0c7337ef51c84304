package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
)

// Report is the structured scan summary.
type Report struct {
	Root       string            `json:"root"        yaml:"root"`
	Authors    []string          `json:"authors"     yaml:"authors"`
	TotalLines int               `json:"total_lines" yaml:"total_lines"`
	Languages  []linecount.Entry `json:"languages"   yaml:"languages"`
}

// NewReport builds a report from the full aggregate and the selected entries.
func NewReport(root string, authors []string, counts linecount.Counts, top []linecount.Entry) Report {
	if top == nil {
		top = []linecount.Entry{}
	}

	return Report{
		Root:       root,
		Authors:    authors,
		TotalLines: counts.Total(),
		Languages:  top,
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

// WriteYAML writes r as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return nil
}
