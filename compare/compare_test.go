package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		matched  bool
		strategy string
	}{
		{
			name:     "byte equal",
			actual:   "- : int = 1",
			expected: "- : int = 1",
			matched:  true,
			strategy: "exact",
		},
		{
			name:     "trailing newline",
			actual:   "- : int = 1\n",
			expected: "- : int = 1",
			matched:  true,
			strategy: "trimmed",
		},
		{
			name:     "leading indent",
			actual:   "  - : bool = true",
			expected: "- : bool = true",
			matched:  true,
			strategy: "trimmed",
		},
		{
			name:     "line-wrapped list",
			actual:   "- : int list =\n[1;\n 2; 3]",
			expected: "- : int list =\n[1; 2; 3]",
			matched:  true,
			strategy: "whitespace",
		},
		{
			name:     "different value",
			actual:   "- : int = 2",
			expected: "- : int = 1",
			matched:  false,
			strategy: "whitespace",
		},
		{
			name:     "whitespace cannot hide content differences",
			actual:   "- : int list = [1; 2]",
			expected: "- : int list = [1; 2; 3]",
			matched:  false,
			strategy: "whitespace",
		},
		{
			name:     "both empty",
			actual:   "",
			expected: "",
			matched:  true,
			strategy: "exact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compare(tt.actual, tt.expected)
			assert.Equal(t, tt.matched, out.Matched)
			assert.Equal(t, tt.strategy, out.Strategy)
			assert.Equal(t, tt.actual, out.Actual)
		})
	}
}

func TestCompareDoesNotMutateInputs(t *testing.T) {
	actual := " a\n b "
	expected := "a b"
	out := Compare(actual, expected)
	require.True(t, out.Matched)
	// Outcome carries the raw actual text, not a normalized view.
	assert.Equal(t, " a\n b ", out.Actual)
}

func TestNormalizeWhitespaceIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		" a\n b c \td\n",
		"- : int list =\n[1;\n 2; 3]",
		"already normal",
	}
	for _, in := range inputs {
		once := NormalizeWhitespace(in)
		assert.Equal(t, once, NormalizeWhitespace(once), "input %q", in)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c d", NormalizeWhitespace(" a\n b c \td\n"))
}

func TestStrategyOrder(t *testing.T) {
	require.Len(t, Strategies, 3)
	assert.Equal(t, "exact", Strategies[0].Name)
	assert.Equal(t, "trimmed", Strategies[1].Name)
	assert.Equal(t, "whitespace", Strategies[2].Name)
}
