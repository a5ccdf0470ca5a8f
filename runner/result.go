package runner

import (
	"fmt"
	"time"

	"github.com/olin/focstest/types"
)

// CaseResult captures the outcome of a single test case.
type CaseResult struct {
	Suite      int // 1-based suite index
	Index      int // 1-based case index within the suite
	SuiteCases int // number of cases in the suite, for display
	Input      string
	Expected   string
	Output     string // actual toplevel output (empty when evaluation failed)
	Status     types.CaseStatus
	Strategy   string // comparison strategy that decided the verdict
	Err        error
	Duration   time.Duration
}

// SuiteResult aggregates the results of one suite.
type SuiteResult struct {
	Index    int
	Cases    []CaseResult
	Stats    Stats
	Duration time.Duration
}

// Stats tracks case counts at suite and run level.
type Stats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Aborted int
}

func (s *Stats) add(status types.CaseStatus) {
	s.Total++
	switch {
	case status == types.CaseStatusPass:
		s.Passed++
	case status == types.CaseStatusFail:
		s.Failed++
	case status.Skipped():
		s.Skipped++
	case status == types.CaseStatusAborted:
		s.Aborted++
	}
}

// Result captures a complete test run.
type Result struct {
	RunID    string
	Suites   []SuiteResult
	Stats    Stats
	Status   types.CaseStatus // pass, fail or aborted
	Duration time.Duration
}

// Tested returns the number of cases that reached a pass/fail verdict's
// denominator: everything that wasn't skipped or aborted.
func (r *Result) Tested() int {
	return r.Stats.Total - r.Stats.Skipped - r.Stats.Aborted
}

func (r *Result) String() string {
	return fmt.Sprintf("run %s: %d of %d tests failed, %d skipped (%.1fs)",
		r.RunID, r.Stats.Failed, r.Tested(), r.Stats.Skipped, r.Duration.Seconds())
}
