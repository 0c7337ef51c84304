package langcatalog

import (
	"sort"

	"github.com/src-d/enry/v2"
	"github.com/src-d/enry/v2/data"
)

// LinguistEntries builds entries from the linguist tables shipped with enry.
// Languages are emitted in name order so that last-wins resolution of shared
// extensions is the same on every run.
func LinguistEntries() []Entry {
	names := make([]string, 0, len(data.ExtensionsByLanguage))
	for name := range data.ExtensionsByLanguage {
		names = append(names, name)
	}

	sort.Strings(names)

	entries := make([]Entry, 0, len(names))

	for _, name := range names {
		kind := kindFromEnry(enry.GetLanguageType(name))
		if kind == KindUnknown {
			continue
		}

		exts := append([]string(nil), data.ExtensionsByLanguage[name]...)
		entries = append(entries, Entry{Name: name, Kind: kind, Extensions: exts})
	}

	return entries
}

func kindFromEnry(t enry.Type) Kind {
	switch t {
	case enry.Programming:
		return KindProgramming
	case enry.Data:
		return KindData
	case enry.Prose:
		return KindProse
	case enry.Markup:
		return KindMarkup
	default:
		return KindUnknown
	}
}
