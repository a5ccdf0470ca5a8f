// Package reporting renders per-case verdicts and run summaries to the
// console. Formatting lives here; the runner only produces structured
// results.
package reporting

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/olin/focstest/repl"
	"github.com/olin/focstest/runner"
	"github.com/olin/focstest/types"
)

// Reporter writes human-readable test output. Verbose mode also reports
// passing cases and their comparison details.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// NewReporter creates a console reporter writing to out.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// StartRun announces what was found before the first case runs.
func (r *Reporter) StartRun(numSuites, numCases int) {
	fmt.Fprintf(r.out, "Found %d test suites and %d tests total\n", numSuites, numCases)
	fmt.Fprintln(r.out, "Starting tests")
}

// Case reports one finished test case. Cases aborted by a fatal condition
// elsewhere are silent; Fatal covers those.
func (r *Reporter) Case(res runner.CaseResult) {
	header := fmt.Sprintf(" test %d of %d in suite %d", res.Index, res.SuiteCases, res.Suite)

	switch res.Status {
	case types.CaseStatusPass:
		if !r.verbose {
			return
		}
		line := "Passed" + header
		if res.Strategy != "exact" && res.Strategy != "trimmed" {
			line += " w/ method " + res.Strategy
		}
		fmt.Fprintln(r.out, text.FgGreen.Sprint(line))
		r.detail(res)
	case types.CaseStatusFail:
		fmt.Fprintln(r.out, text.FgRed.Sprint("Failed"+header))
		r.detail(res)
	case types.CaseStatusSkipUnparsable:
		fmt.Fprintln(r.out, text.FgYellow.Sprintf("Unable to run test %q: %v", res.Input, res.Err))
	case types.CaseStatusSkipUnimplemented:
		// Only the triggering case carries the error; the propagated
		// skips in the same suite stay quiet.
		if res.Err != nil {
			fmt.Fprintln(r.out, text.FgYellow.Sprintf("Skipped unimplemented suite %d %q", res.Suite, res.Input))
		}
	}
}

// detail prints the INPUT/EXPECTED/OUTPUT block for a case.
func (r *Reporter) detail(res runner.CaseResult) {
	fmt.Fprintf(r.out, "  INPUT:\t%q\n", res.Input)
	fmt.Fprintf(r.out, "  EXPECTED:\t%q\n", res.Expected)
	fmt.Fprintf(r.out, "  OUTPUT:\t%q\n", res.Output)
}

// Fatal reports the condition that aborted the run.
func (r *Reporter) Fatal(err error) {
	var interpErr *repl.InterpreterError
	if errors.As(err, &interpErr) {
		fmt.Fprintln(r.out, text.Colors{text.FgRed, text.Bold}.Sprint("Ocaml returned the following error:"))
		fmt.Fprintln(r.out, text.FgRed.Sprint(interpErr.Message))
		return
	}
	fmt.Fprintln(r.out, text.Colors{text.FgRed, text.Bold}.Sprintf("Test run aborted: %v", err))
}

// Summary prints the closing pass/fail/skip lines.
func (r *Reporter) Summary(result *runner.Result) {
	fmt.Fprintln(r.out, "Finished testing")

	failSummary := fmt.Sprintf("%d of %d tests failed", result.Stats.Failed, result.Tested())
	if result.Stats.Failed > 0 {
		fmt.Fprintln(r.out, text.FgRed.Sprint(failSummary))
	} else {
		fmt.Fprintln(r.out, text.FgGreen.Sprint(failSummary))
	}

	skipSummary := fmt.Sprintf("%d tests skipped", result.Stats.Skipped)
	if result.Stats.Skipped > 0 {
		fmt.Fprintln(r.out, text.FgYellow.Sprint(skipSummary))
	} else {
		fmt.Fprintln(r.out, skipSummary)
	}
}

// Table renders the per-suite results table with run totals.
func (r *Reporter) Table(result *runner.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("Test Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{
		"Type", "ID", "Duration", "Tests", "Passed", "Failed", "Skipped", "Status",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type", AutoMerge: true},
		{Name: "ID", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})

	for _, suite := range result.Suites {
		t.AppendRow(table.Row{
			"Suite",
			fmt.Sprintf("suite %d", suite.Index),
			formatDuration(suite.Duration),
			"-",
			suite.Stats.Passed,
			suite.Stats.Failed,
			suite.Stats.Skipped,
			suiteStatusString(suite.Stats),
		})

		for i, res := range suite.Cases {
			prefix := "├──"
			if i == len(suite.Cases)-1 {
				prefix = "└──"
			}
			t.AppendRow(table.Row{
				"Test",
				fmt.Sprintf("%s %s", prefix, caseDisplayName(res)),
				formatDuration(res.Duration),
				"1",
				boolToInt(res.Status == types.CaseStatusPass),
				boolToInt(res.Status == types.CaseStatusFail),
				boolToInt(res.Status.Skipped()),
				statusString(res.Status),
			})
		}
		t.AppendSeparator()
	}

	switch result.Status {
	case types.CaseStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.CaseStatusFail:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		formatDuration(result.Duration),
		result.Stats.Total,
		result.Stats.Passed,
		result.Stats.Failed,
		result.Stats.Skipped,
		statusString(result.Status),
	})

	t.Render()
}

// caseDisplayName shortens a case to its leading identifier, usually the
// function under test.
func caseDisplayName(res runner.CaseResult) string {
	name := res.Input
	for i, c := range name {
		if c == ' ' || c == ';' {
			name = name[:i]
			break
		}
	}
	return fmt.Sprintf("%d: %s", res.Index, name)
}

func statusString(status types.CaseStatus) string {
	switch status {
	case types.CaseStatusPass:
		return "✓ pass"
	case types.CaseStatusFail:
		return "✗ fail"
	case types.CaseStatusAborted:
		return "! aborted"
	default:
		return "- skip"
	}
}

func suiteStatusString(stats runner.Stats) string {
	switch {
	case stats.Failed > 0:
		return "✗ fail"
	case stats.Aborted > 0:
		return "! aborted"
	case stats.Passed == 0 && stats.Skipped > 0:
		return "- skip"
	default:
		return "✓ pass"
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
