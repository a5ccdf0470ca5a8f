// Package compare decides whether two pieces of interpreter output are
// equivalent under a fixed cascade of text-normalization strategies.
//
// The toplevel line-wraps long structured values at a column that varies
// with the terminal, so byte-exact comparison legitimately fails on correct
// output. The cascade recovers those cases: non-whitespace content must
// still match exactly at every step.
package compare

import "strings"

// Strategy is a named, pure text normalizer. Two strings are considered
// equivalent under a strategy when their normalized forms are equal.
type Strategy struct {
	Name      string
	Normalize func(string) string
}

// Strategies is the ordered cascade applied by Compare, weakest-assumption
// first. The first strategy under which both sides agree wins.
var Strategies = []Strategy{
	{Name: "exact", Normalize: func(s string) string { return s }},
	{Name: "trimmed", Normalize: strings.TrimSpace},
	{Name: "whitespace", Normalize: NormalizeWhitespace},
}

// NormalizeWhitespace collapses every run of whitespace (spaces, tabs,
// newlines) to a single space and trims both ends. It is idempotent.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Outcome reports the result of a comparison. When Matched is false,
// Strategy names the last strategy tried.
type Outcome struct {
	Matched  bool
	Strategy string
	Actual   string
}

// Compare checks actual against expected under each strategy in order and
// returns the outcome of the first match.
func Compare(actual, expected string) Outcome {
	out := Outcome{Actual: actual}
	for _, s := range Strategies {
		out.Strategy = s.Name
		if s.Normalize(actual) == s.Normalize(expected) {
			out.Matched = true
			return out
		}
	}
	return out
}
