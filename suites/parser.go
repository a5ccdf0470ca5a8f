// Package suites extracts test suites from course code blocks, applies the
// suite selection policy and persists parsed suites to disk.
package suites

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/olin/focstest/types"
)

// testPattern matches one doctest record: a prompted command ending in ";;"
// followed by its expected output (which may span lines).
var testPattern = regexp.MustCompile(`(?s)^# (.+;;) *\n(.*)$`)

// recordSeparator starts the next prompted command within a block.
const recordSeparator = "\n# "

// ParseBlock parses one code block's interleaved prompts, commands and
// outputs into ordered test cases. Parsing stops at the first text that
// does not form a doctest record; whatever was parsed so far is returned.
func ParseBlock(text string) []types.TestCase {
	var cases []types.TestCase
	for text != "" {
		chunk := text
		rest := ""
		if eot := strings.Index(text, recordSeparator); eot != -1 {
			chunk = text[:eot]
			rest = text[eot+1:]
		}

		m := testPattern.FindStringSubmatch(chunk)
		if m == nil {
			log.Error("Couldn't parse test text", "text", text)
			break
		}
		cases = append(cases, types.TestCase{
			Input:    strings.TrimSpace(m[1]),
			Expected: strings.TrimSpace(m[2]),
		})
		text = rest
	}
	return cases
}

// ParseSuites parses each code block into a suite, discards empty suites
// and numbers the rest from 1 in document order.
func ParseSuites(blocks []string) []types.Suite {
	var out []types.Suite
	for _, block := range blocks {
		cases := ParseBlock(block)
		if len(cases) == 0 {
			continue
		}
		out = append(out, types.Suite{
			Index: len(out) + 1,
			Cases: cases,
		})
	}
	return out
}
