package linecount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
)

func TestMerge_BothAbsent(t *testing.T) {
	t.Parallel()

	assert.Nil(t, linecount.Merge(nil, nil))
}

func TestMerge_OnePresentReturnsItUnmodified(t *testing.T) {
	t.Parallel()

	m := linecount.Counts{"Go": 3, "Rust": 1}

	left := linecount.Merge(m, nil)
	right := linecount.Merge(nil, m)

	assert.Equal(t, linecount.Counts{"Go": 3, "Rust": 1}, left)
	assert.Equal(t, linecount.Counts{"Go": 3, "Rust": 1}, right)
}

func TestMerge_SumsSharedKeysAndKeepsDisjointOnes(t *testing.T) {
	t.Parallel()

	a := linecount.Counts{"Go": 6, "C": 2}
	b := linecount.Counts{"Go": 1, "Rust": 4}

	got := linecount.Merge(a, b)

	assert.Equal(t, linecount.Counts{"Go": 7, "C": 2, "Rust": 4}, got)
	// Operands are left untouched.
	assert.Equal(t, linecount.Counts{"Go": 6, "C": 2}, a)
	assert.Equal(t, linecount.Counts{"Go": 1, "Rust": 4}, b)
}

func TestMerge_EmptyMappingIsIdentity(t *testing.T) {
	t.Parallel()

	m := linecount.Counts{"Go": 5}

	assert.Equal(t, m, linecount.Merge(linecount.New(), m))
	assert.Empty(t, linecount.Merge(linecount.New(), nil))
}

func TestMerge_Algebra(t *testing.T) {
	t.Parallel()

	samples := []linecount.Counts{
		nil,
		linecount.New(),
		{"Go": 1},
		{"Go": 2, "Rust": 3},
		{"Python": 7, "Rust": 1},
		{"C": 4, "Go": 10, "Zig": 1},
	}

	for _, a := range samples {
		for _, b := range samples {
			assert.Equal(t, linecount.Merge(a, b), linecount.Merge(b, a), "commutativity for %v, %v", a, b)

			for _, c := range samples {
				left := linecount.Merge(linecount.Merge(a, b), c)
				right := linecount.Merge(a, linecount.Merge(b, c))
				assert.Equal(t, left, right, "associativity for %v, %v, %v", a, b, c)
			}

			merged := linecount.Merge(a, b)
			for lang := range a {
				assert.Contains(t, merged, lang)
			}

			for lang := range b {
				assert.Contains(t, merged, lang)
			}

			for lang, n := range merged {
				assert.GreaterOrEqual(t, n, 0, "negative count for %s", lang)
			}
		}
	}
}

func TestAdd_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	c := linecount.New()
	c.Add("Go", 0)
	c.Add("Go", -4)
	c.Add("Rust", 2)
	c.Add("Rust", 3)

	assert.Equal(t, linecount.Counts{"Rust": 5}, c)
	assert.Equal(t, 5, c.Total())
}
