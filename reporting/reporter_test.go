package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olin/focstest/repl"
	"github.com/olin/focstest/runner"
	"github.com/olin/focstest/types"
)

func passedCase() runner.CaseResult {
	return runner.CaseResult{
		Suite: 1, Index: 1, SuiteCases: 2,
		Input: "double 2;;", Expected: "- : int = 4", Output: "- : int = 4",
		Status: types.CaseStatusPass, Strategy: "exact",
	}
}

func TestCaseVerdicts(t *testing.T) {
	t.Run("pass is quiet by default", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf, false).Case(passedCase())
		assert.Empty(t, buf.String())
	})

	t.Run("pass prints when verbose", func(t *testing.T) {
		var buf bytes.Buffer
		NewReporter(&buf, true).Case(passedCase())
		assert.Contains(t, buf.String(), "Passed test 1 of 2 in suite 1")
		assert.Contains(t, buf.String(), "INPUT:")
	})

	t.Run("pass names non-trivial strategy", func(t *testing.T) {
		res := passedCase()
		res.Strategy = "whitespace"
		var buf bytes.Buffer
		NewReporter(&buf, true).Case(res)
		assert.Contains(t, buf.String(), "w/ method whitespace")
	})

	t.Run("fail prints detail", func(t *testing.T) {
		res := passedCase()
		res.Status = types.CaseStatusFail
		res.Output = "- : int = 5"
		var buf bytes.Buffer
		NewReporter(&buf, false).Case(res)
		assert.Contains(t, buf.String(), "Failed test 1 of 2 in suite 1")
		assert.Contains(t, buf.String(), `"- : int = 5"`)
	})

	t.Run("unimplemented reported once", func(t *testing.T) {
		res := passedCase()
		res.Status = types.CaseStatusSkipUnimplemented
		res.Err = &repl.UnimplementedError{Command: res.Input, Message: "Exception"}
		var buf bytes.Buffer
		rep := NewReporter(&buf, false)
		rep.Case(res)
		assert.Contains(t, buf.String(), "Skipped unimplemented suite 1")

		// Propagated skips in the same suite carry no error and are quiet.
		buf.Reset()
		res.Err = nil
		rep.Case(res)
		assert.Empty(t, buf.String())
	})

	t.Run("aborted is quiet", func(t *testing.T) {
		res := passedCase()
		res.Status = types.CaseStatusAborted
		var buf bytes.Buffer
		NewReporter(&buf, false).Case(res)
		assert.Empty(t, buf.String())
	})
}

func TestFatal(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false).Fatal(&repl.InterpreterError{
		Kind:    repl.ClassError,
		Message: "Error: Unbound value foo",
	})
	assert.Contains(t, buf.String(), "Ocaml returned the following error:")
	assert.Contains(t, buf.String(), "Unbound value foo")

	buf.Reset()
	NewReporter(&buf, false).Fatal(&repl.TimeoutError{})
	assert.Contains(t, buf.String(), "Test run aborted")
}

func TestSummary(t *testing.T) {
	result := &runner.Result{
		Stats:  runner.Stats{Total: 5, Passed: 3, Failed: 1, Skipped: 1},
		Status: types.CaseStatusFail,
	}
	var buf bytes.Buffer
	NewReporter(&buf, false).Summary(result)
	assert.Contains(t, buf.String(), "Finished testing")
	assert.Contains(t, buf.String(), "1 of 4 tests failed")
	assert.Contains(t, buf.String(), "1 tests skipped")
}

func TestTable(t *testing.T) {
	result := &runner.Result{
		RunID:  "run-1",
		Status: types.CaseStatusPass,
		Stats:  runner.Stats{Total: 1, Passed: 1},
		Suites: []runner.SuiteResult{{
			Index: 1,
			Cases: []runner.CaseResult{passedCase()},
			Stats: runner.Stats{Total: 1, Passed: 1},
		}},
	}
	var buf bytes.Buffer
	NewReporter(&buf, false).Table(result)
	out := buf.String()
	assert.Contains(t, out, "Test Results")
	assert.Contains(t, out, "suite 1")
	assert.Contains(t, out, "1: double")
	assert.Contains(t, out, "TOTAL")
}
