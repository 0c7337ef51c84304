// Package linecount holds the per-language line totals produced by a scan and the
// merge operation used to fold them across repositories.
package linecount

// Counts maps a language name to the number of attributed lines.
// A nil Counts means "no result"; it is the identity element of Merge.
type Counts map[string]int

// New returns an empty, non-nil Counts.
func New() Counts {
	return make(Counts)
}

// Add increases the count of lang by n. Non-positive n is ignored, so a Counts
// built through Add never holds a zero or negative entry.
func (c Counts) Add(lang string, n int) {
	if n <= 0 {
		return
	}

	c[lang] += n
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0

	for _, n := range c {
		total += n
	}

	return total
}

// Merge combines two optional results.
//
// When either operand is nil the other is returned as is. When both are present
// a new map holds, for every key of either operand, the sum of both counts.
// Operands are never mutated, which keeps Merge associative and commutative in
// value regardless of fold order.
func Merge(a, b Counts) Counts {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	out := make(Counts, max(len(a), len(b)))

	for lang, n := range a {
		out[lang] += n
	}

	for lang, n := range b {
		out[lang] += n
	}

	return out
}

