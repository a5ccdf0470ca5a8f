// Package focstest ties the pieces together: it obtains test suites for a
// homework file, runs them through the OCaml toplevel and reports the
// results.
package focstest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/olin/focstest/page"
	"github.com/olin/focstest/repl"
	"github.com/olin/focstest/reporting"
	"github.com/olin/focstest/runner"
	"github.com/olin/focstest/suites"
	"github.com/olin/focstest/types"
)

// Tester is the top-level application: one Start call is one test run.
type Tester struct {
	cfg      *Config
	version  string
	log      log.Logger
	reporter *reporting.Reporter
}

// New creates a Tester from a validated config.
func New(ctx context.Context, cfg *Config, version string) (*Tester, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Tester{
		cfg:      cfg,
		version:  version,
		log:      cfg.Log,
		reporter: reporting.NewReporter(os.Stdout, cfg.Verbose),
	}, nil
}

// Start runs the full test flow. It returns nil when every selected test
// passed, a TestFailureError when comparisons failed, and a RuntimeError
// for fatal conditions.
func (t *Tester) Start(ctx context.Context) error {
	t.log.Info("Starting focstest", "version", t.version, "file", t.cfg.OcamlFile)

	allSuites, err := t.loadSuites(ctx)
	if err != nil {
		return NewRuntimeError(err)
	}
	if len(allSuites) == 0 {
		return NewRuntimeError(fmt.Errorf("no test suites found for %q", t.cfg.OcamlFile))
	}

	if t.cfg.SaveTests != "" {
		doc := types.Document{Source: t.cfg.URL, Suites: allSuites}
		if err := suites.SaveFile(t.cfg.SaveTests, doc); err != nil {
			return NewRuntimeError(err)
		}
		t.log.Info("Saved tests", "path", t.cfg.SaveTests)
	}

	selected, deselected, err := suites.ApplySelection(allSuites, t.cfg.Selection)
	if err != nil {
		return NewRuntimeError(err)
	}

	numCases := 0
	for _, s := range allSuites {
		numCases += len(s.Cases)
	}
	t.reporter.StartRun(len(allSuites), numCases)

	session, err := repl.NewSession(repl.Config{
		Binary:  t.cfg.OcamlBinary,
		Timeout: t.cfg.Timeout,
		Log:     t.log,
	})
	if err != nil {
		return NewRuntimeError(err)
	}

	r, err := runner.NewRunner(runner.Config{
		Evaluator:       session,
		Suites:          selected,
		Files:           []string{t.cfg.OcamlFile},
		DeselectedCases: deselected,
		OnCase:          t.reporter.Case,
		Log:             t.log,
	})
	if err != nil {
		return NewRuntimeError(err)
	}

	result, fatal := r.Run(ctx)
	if fatal != nil {
		t.reporter.Fatal(fatal)
		return NewRuntimeError(fatal)
	}

	t.reporter.Summary(result)
	if t.cfg.Verbose {
		t.reporter.Table(result)
	}

	if result.Stats.Failed > 0 {
		return NewTestFailureError(result.String())
	}
	return nil
}

// loadSuites obtains the test suites, from the tests file when one is
// given, otherwise by scraping the homework page.
func (t *Tester) loadSuites(ctx context.Context) ([]types.Suite, error) {
	if t.cfg.TestsFile != "" {
		doc, err := suites.LoadFile(t.cfg.TestsFile)
		if err != nil {
			return nil, err
		}
		t.log.Debug("Loaded tests from file", "path", t.cfg.TestsFile, "suites", len(doc.Suites))
		return doc.Suites, nil
	}

	fetcher := page.NewFetcher(page.FetcherConfig{
		CacheDir: t.cfg.CacheDir,
		Log:      t.log,
	})
	body, err := fetcher.Fetch(ctx, t.cfg.URL, t.cfg.UpdateCache)
	if err != nil {
		return nil, err
	}
	blocks, err := page.ExtractCodeBlocks(body)
	if err != nil {
		return nil, err
	}
	parsed := suites.ParseSuites(blocks)
	t.log.Debug("Parsed tests from page", "url", t.cfg.URL, "suites", len(parsed))
	return parsed, nil
}
