// Package langcatalog maps file extensions to languages and their kinds.
//
// A Catalog is built once at startup from a bundled dataset (or from the enry
// linguist tables) and is read-only afterwards, so it is safe for concurrent use.
package langcatalog

import (
	"path"
	"sort"
	"strings"
)

// Entry describes one language.
type Entry struct {
	Name       string
	Kind       Kind
	Extensions []string
}

// IsProgramming reports whether the entry is source code.
func (e Entry) IsProgramming() bool {
	return e.Kind == KindProgramming
}

// Catalog is keyed by extension, leading dot included.
type Catalog struct {
	byExt map[string]slot
	added int
}

// slot is the entry owning one extension and the order it was loaded in.
type slot struct {
	entry Entry
	seq   int
}

// New builds a catalog from entries in order. When several entries claim the
// same extension, the last one wins.
func New(entries ...Entry) *Catalog {
	c := &Catalog{byExt: make(map[string]slot)}

	for _, e := range entries {
		c.add(e)
	}

	return c
}

func (c *Catalog) add(e Entry) {
	c.added++

	for _, ext := range e.Extensions {
		c.byExt[ext] = slot{entry: e, seq: c.added}
	}
}

// Classify looks up an extension such as ".go". The lookup is case-sensitive.
func (c *Catalog) Classify(ext string) (Entry, bool) {
	if c == nil || ext == "" {
		return Entry{}, false
	}

	sl, ok := c.byExt[ext]

	return sl.entry, ok
}

// Len returns the number of known extensions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.byExt)
}

// Entries returns one entry per language name still reachable through at least
// one extension, sorted by name. Extensions lists only the extensions that
// resolve to the language, sorted. When several loaded records share a name,
// the kind comes from the last one loaded.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	type owned struct {
		entry Entry
		seq   int
	}

	byName := make(map[string]*owned)

	for ext, sl := range c.byExt {
		o, ok := byName[sl.entry.Name]
		if !ok {
			o = &owned{entry: Entry{Name: sl.entry.Name, Kind: sl.entry.Kind}, seq: sl.seq}
			byName[sl.entry.Name] = o
		}

		if sl.seq > o.seq {
			o.entry.Kind = sl.entry.Kind
			o.seq = sl.seq
		}

		o.entry.Extensions = append(o.entry.Extensions, ext)
	}

	out := make([]Entry, 0, len(byName))

	for _, o := range byName {
		sort.Strings(o.entry.Extensions)
		out = append(out, o.entry)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// ExtensionOf returns the extension of the last element of a slash-separated
// path, dot included. Names without a dot, and dotfiles such as ".gitignore",
// have no extension.
func ExtensionOf(p string) (string, bool) {
	base := path.Base(p)

	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return "", false
	}

	return base[idx:], true
}
