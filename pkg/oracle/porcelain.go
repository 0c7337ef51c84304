package oracle

import (
	"strings"

	"github.com/Sumatoshi-tech/locradar/pkg/identity"
)

const authorHeader = "author "

// CountPorcelainAuthors counts the lines of `git blame --line-porcelain`
// output attributed to authors. Every blamed line carries its own
// "author <name>" header; the name must match exactly. Content lines start
// with a tab and are never mistaken for headers.
func CountPorcelainAuthors(text string, authors identity.AuthorSet) int {
	count := 0

	for line := range strings.SplitSeq(text, "\n") {
		name, ok := strings.CutPrefix(line, authorHeader)
		if !ok {
			continue
		}

		if authors.Contains(strings.TrimSuffix(name, "\r")) {
			count++
		}
	}

	return count
}

// SplitLsFiles splits `git ls-files -z` output. Paths are NUL-terminated and
// verbatim, so names holding quotes, backslashes, tabs or newlines survive
// unchanged. The trailing empty entry is discarded.
func SplitLsFiles(out string) []string {
	if out == "" {
		return []string{}
	}

	parts := strings.Split(out, "\x00")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}
