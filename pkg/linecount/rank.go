package linecount

import "sort"

// Entry is one language with its attributed line count.
type Entry struct {
	Language string `json:"language" yaml:"language"`
	Lines    int    `json:"lines"    yaml:"lines"`
}

// Top returns the n languages with the most lines, largest first.
// Equal counts are ordered by language name so the selection does not depend on
// map iteration order. A non-positive n returns every entry.
func Top(c Counts, n int) []Entry {
	entries := make([]Entry, 0, len(c))

	for lang, lines := range c {
		entries = append(entries, Entry{Language: lang, Lines: lines})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Lines != entries[j].Lines {
			return entries[i].Lines > entries[j].Lines
		}

		return entries[i].Language < entries[j].Language
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	return entries
}

// MaxLines returns the largest count among entries, or zero when empty.
func MaxLines(entries []Entry) int {
	peak := 0

	for _, e := range entries {
		if e.Lines > peak {
			peak = e.Lines
		}
	}

	return peak
}
