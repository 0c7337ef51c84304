// Package identity builds the set of author names a scan attributes lines to.
package identity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNoAuthors is returned when no usable author name was supplied or configured.
var ErrNoAuthors = errors.New("no author identity: pass --author or set git config --global user.name")

// AuthorSet is a non-empty, ordered list of author names. Matching is exact
// and case-sensitive. The zero value is empty and rejected by scans.
type AuthorSet struct {
	names []string
}

// NewAuthorSet keeps the first occurrence of every non-blank name.
// Surrounding whitespace is trimmed; case is preserved.
func NewAuthorSet(names ...string) (AuthorSet, error) {
	out := make([]string, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}

		out = append(out, n)
	}

	if len(out) == 0 {
		return AuthorSet{}, ErrNoAuthors
	}

	return AuthorSet{names: out}, nil
}

// MustAuthorSet is NewAuthorSet for literals in tests and examples.
func MustAuthorSet(names ...string) AuthorSet {
	set, err := NewAuthorSet(names...)
	if err != nil {
		panic(err)
	}

	return set
}

// Names returns a copy of the names in order.
func (a AuthorSet) Names() []string {
	return slices.Clone(a.names)
}

// Len returns the number of names.
func (a AuthorSet) Len() int {
	return len(a.names)
}

// Empty reports whether the set holds no names.
func (a AuthorSet) Empty() bool {
	return len(a.names) == 0
}

// Contains reports whether name exactly matches one of the authors.
func (a AuthorSet) Contains(name string) bool {
	return slices.Contains(a.names, name)
}

// String joins the names for logs.
func (a AuthorSet) String() string {
	return strings.Join(a.names, ", ")
}

// Resolve returns the explicit names when any are given, otherwise the single
// identity produced by lookup. Explicit names that are all blank are
// ErrNoAuthors; they never fall back to lookup. lookup is called at most once.
func Resolve(explicit []string, lookup func() (string, error)) (AuthorSet, error) {
	if len(explicit) > 0 {
		return NewAuthorSet(explicit...)
	}

	if lookup == nil {
		return AuthorSet{}, ErrNoAuthors
	}

	name, err := lookup()
	if err != nil {
		return AuthorSet{}, fmt.Errorf("default author: %w", err)
	}

	return NewAuthorSet(name)
}
