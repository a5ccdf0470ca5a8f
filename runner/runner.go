// Package runner evaluates test suites against a homework file, one
// toplevel subprocess per case, strictly sequentially.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/olin/focstest/compare"
	"github.com/olin/focstest/metrics"
	"github.com/olin/focstest/repl"
	"github.com/olin/focstest/types"
)

// Evaluator runs one command (with preloaded files) through the toplevel
// and returns its output segment. Implemented by *repl.Session.
type Evaluator interface {
	Eval(ctx context.Context, code string, files []string) (string, error)
}

// Config holds configuration for creating a Runner.
type Config struct {
	Evaluator Evaluator
	Suites    []types.Suite // already filtered by suite selection
	Files     []string      // source files preloaded before every case
	// DeselectedCases is the number of cases excluded by suite selection,
	// counted into the run's skipped total.
	DeselectedCases int
	// OnCase, when set, observes each case result as it is produced.
	OnCase func(CaseResult)
	Log    log.Logger
}

// Runner drives the per-case state machine. Cases run one at a time; the
// run totals are only touched between case completions.
type Runner struct {
	evaluator  Evaluator
	suites     []types.Suite
	files      []string
	deselected int
	onCase     func(CaseResult)
	log        log.Logger
	tracer     trace.Tracer
}

// NewRunner creates a test runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Runner{
		evaluator:  cfg.Evaluator,
		suites:     cfg.Suites,
		files:      cfg.Files,
		deselected: cfg.DeselectedCases,
		onCase:     cfg.OnCase,
		log:        cfg.Log,
		tracer:     otel.Tracer("test runner"),
	}, nil
}

// Run evaluates every selected suite in ascending order and returns the
// accumulated result. A fatal condition (interpreter error or exception,
// timeout) marks the remaining cases aborted and is returned as the error;
// the partial result is still valid for reporting. An empty selection is a
// valid empty run: it passes with every deselected case counted skipped.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	start := time.Now()
	result := &Result{RunID: runID}

	numCases := 0
	for _, s := range r.suites {
		numCases += len(s.Cases)
	}
	r.log.Info("Starting tests", "run_id", runID, "suites", len(r.suites), "cases", numCases)

	var fatal error
	for _, suite := range r.suites {
		suiteStart := time.Now()
		sres := SuiteResult{Index: suite.Index}

		// Set once a stub makes the rest of this suite skippable.
		var skipRest types.CaseStatus

		for i, tc := range suite.Cases {
			cres := CaseResult{
				Suite:      suite.Index,
				Index:      i + 1,
				SuiteCases: len(suite.Cases),
				Input:      tc.Input,
				Expected:   tc.Expected,
			}

			switch {
			case fatal != nil:
				cres.Status = types.CaseStatusAborted
			case skipRest != "":
				cres.Status = skipRest
			default:
				r.runCase(ctx, &cres)
				switch cres.Status {
				case types.CaseStatusSkipUnimplemented:
					// Stubs are monotonic: later cases in the suite are
					// assumed to depend on the same missing code.
					skipRest = types.CaseStatusSkipUnimplemented
				case types.CaseStatusAborted:
					fatal = cres.Err
				}
			}

			sres.Stats.add(cres.Status)
			metrics.RecordCase(runID, strconv.Itoa(suite.Index), cres.Status)
			sres.Cases = append(sres.Cases, cres)
			if r.onCase != nil {
				r.onCase(cres)
			}
		}

		sres.Duration = time.Since(suiteStart)
		addStats(&result.Stats, sres.Stats)
		result.Suites = append(result.Suites, sres)
	}

	result.Stats.Total += r.deselected
	result.Stats.Skipped += r.deselected
	result.Duration = time.Since(start)
	result.Status = runStatus(result, fatal)

	metrics.RecordRun(runID, string(result.Status),
		result.Stats.Total, result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped,
		result.Duration)
	r.log.Info("Test run completed", "run_id", runID, "status", result.Status,
		"passed", result.Stats.Passed, "failed", result.Stats.Failed, "skipped", result.Stats.Skipped)

	return result, fatal
}

// runCase evaluates one case and sets its terminal status.
func (r *Runner) runCase(ctx context.Context, res *CaseResult) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("suite %d case %d", res.Suite, res.Index))
	defer span.End()

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
	}()

	r.log.Debug("Running test case", "suite", res.Suite, "case", res.Index, "input", res.Input)

	output, err := r.evaluator.Eval(ctx, res.Input, r.files)
	if err != nil {
		res.Err = err
		var unimplErr *repl.UnimplementedError
		switch {
		case errors.As(err, &unimplErr):
			res.Status = types.CaseStatusSkipUnimplemented
			r.log.Warn("Skipping unimplemented suite", "suite", res.Suite, "case", res.Index, "err", err)
		case repl.IsSkippable(err):
			res.Status = types.CaseStatusSkipUnparsable
			r.log.Warn("Unable to run test", "suite", res.Suite, "case", res.Index, "err", err)
		default:
			res.Status = types.CaseStatusAborted
			metrics.RecordError("fatal_evaluation_error")
			r.log.Error("Fatal evaluation error", "suite", res.Suite, "case", res.Index, "err", err)
		}
		return
	}

	outcome := compare.Compare(output, res.Expected)
	res.Output = output
	res.Strategy = outcome.Strategy
	if outcome.Matched {
		res.Status = types.CaseStatusPass
		r.log.Debug("Test passed", "suite", res.Suite, "case", res.Index, "strategy", outcome.Strategy)
	} else {
		res.Status = types.CaseStatusFail
	}
}

func addStats(dst *Stats, src Stats) {
	dst.Total += src.Total
	dst.Passed += src.Passed
	dst.Failed += src.Failed
	dst.Skipped += src.Skipped
	dst.Aborted += src.Aborted
}

func runStatus(result *Result, fatal error) types.CaseStatus {
	switch {
	case fatal != nil:
		return types.CaseStatusAborted
	case result.Stats.Failed > 0:
		return types.CaseStatusFail
	default:
		return types.CaseStatusPass
	}
}
