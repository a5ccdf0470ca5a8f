// Package types defines the shared data model: test cases, suites, case
// statuses, and suite selection.
package types

import "fmt"

// CaseStatus is the terminal status of one test case.
type CaseStatus string

const (
	// CaseStatusPass means the output matched the expectation under one of
	// the comparison strategies.
	CaseStatusPass CaseStatus = "pass"
	// CaseStatusFail means the output matched under none of them.
	CaseStatusFail CaseStatus = "fail"
	// CaseStatusSkipUnparsable means the toplevel transcript for this case
	// could not be interpreted, so no verdict was possible.
	CaseStatusSkipUnparsable CaseStatus = "skip-unparsable"
	// CaseStatusSkipUnimplemented means the case hit a stub exception, or
	// followed one in the same suite.
	CaseStatusSkipUnimplemented CaseStatus = "skip-unimplemented"
	// CaseStatusAborted means a fatal condition ended the run before this
	// case could produce a verdict.
	CaseStatusAborted CaseStatus = "aborted"
)

// Skipped reports whether the status is one of the skip variants.
func (s CaseStatus) Skipped() bool {
	return s == CaseStatusSkipUnparsable || s == CaseStatusSkipUnimplemented
}

// TestCase pairs one toplevel command with its expected output.
type TestCase struct {
	Input    string `yaml:"input"`
	Expected string `yaml:"expected"`
}

// Suite is an ordered group of test cases, numbered from 1 in the order
// the course page presents them.
type Suite struct {
	Index int        `yaml:"index"`
	Cases []TestCase `yaml:"cases"`
}

// Document is the persisted form of a parsed test collection.
type Document struct {
	Source string  `yaml:"source,omitempty"`
	Suites []Suite `yaml:"suites"`
}

// SelectionMode says how Selection.Indices are interpreted.
type SelectionMode int

const (
	// SelectAll runs every suite.
	SelectAll SelectionMode = iota
	// SelectOnly runs only the listed suites.
	SelectOnly
	// SelectExcept runs everything but the listed suites.
	SelectExcept
)

// Selection is a suite filter. Indices are 1-based suite numbers.
type Selection struct {
	Mode    SelectionMode
	Indices []int
}

// NewSelection builds a Selection from the use/skip flag values. The two
// are mutually exclusive.
func NewSelection(use, skip []int) (Selection, error) {
	if len(use) > 0 && len(skip) > 0 {
		return Selection{}, fmt.Errorf("use-suites and skip-suites are mutually exclusive")
	}
	switch {
	case len(use) > 0:
		return Selection{Mode: SelectOnly, Indices: use}, nil
	case len(skip) > 0:
		return Selection{Mode: SelectExcept, Indices: skip}, nil
	default:
		return Selection{Mode: SelectAll}, nil
	}
}
