// Package repl drives the OCaml toplevel as a subprocess and turns its
// freeform transcript into per-command results.
//
// Each evaluation spawns a fresh `ocaml -noinit` process, writes a
// newline-joined directive batch to its stdin and segments the captured
// stdout on the interactive prompt marker. No process is ever reused, so
// no interpreter state leaks between test cases.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
)

const (
	// DefaultTimeout bounds one toplevel run.
	DefaultTimeout = 5 * time.Second

	// quitDirective makes the toplevel exit once the batch is consumed.
	quitDirective = "#quit;;"
)

// UseDirective returns the toplevel directive that preloads file.
func UseDirective(file string) string {
	return fmt.Sprintf("#use %q;;", file)
}

// Config holds configuration for creating a Session.
type Config struct {
	Binary  string // path to the ocaml binary
	Timeout time.Duration
	Log     log.Logger
}

// Session runs directive batches against the toplevel. It is stateless
// between runs; each Run is one subprocess lifecycle.
type Session struct {
	binary  string
	timeout time.Duration
	log     log.Logger
}

// NewSession creates a session driver.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Binary == "" {
		cfg.Binary = "ocaml"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Session{
		binary:  cfg.Binary,
		timeout: cfg.Timeout,
		log:     cfg.Log,
	}, nil
}

// Run spawns one toplevel process, writes the newline-joined directive
// batch to its stdin, closes stdin and blocks until the process exits or
// the timeout elapses. On timeout the child is killed, partial output is
// drained and logged, and a TimeoutError is returned. On normal exit the
// captured stdout and stderr are returned verbatim.
func (s *Session) Run(ctx context.Context, directives []string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// -noinit disables the user's init file.
	cmd := exec.CommandContext(ctx, s.binary, "-noinit")
	// With TERM set the toplevel injects escape sequences into its output,
	// corrupting segmentation.
	cmd.Env = scrubTerm(os.Environ())
	cmd.Stdin = strings.NewReader(strings.Join(directives, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// After a kill, don't let anything still holding the output pipe stall
	// the drain of partial output.
	cmd.WaitDelay = time.Second

	s.log.Debug("Running toplevel batch",
		"binary", s.binary,
		"directives", len(directives),
		"timeout", s.timeout)

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		s.log.Warn("Ocaml process timed out",
			"timeout", s.timeout,
			"stdout", stdout.String(),
			"stderr", stderr.String())
		return stdout.String(), stderr.String(), &TimeoutError{Timeout: s.timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The toplevel exits non-zero in some error paths; the output
			// still segments, and classification surfaces the problem.
			s.log.Debug("Toplevel exited non-zero", "err", err)
		} else {
			return stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", s.binary, err)
		}
	}

	return stdout.String(), stderr.String(), nil
}

// Eval preloads files, evaluates code and returns the trimmed output
// segment belonging to code. Failures classified from any segment surface
// as typed errors: IncompleteExpressionError, UnimplementedError,
// InterpreterError, MalformedTranscriptError or TimeoutError.
func (s *Session) Eval(ctx context.Context, code string, files []string) (string, error) {
	directives := make([]string, 0, len(files)+2)
	for _, f := range files {
		directives = append(directives, UseDirective(f))
	}
	directives = append(directives, code, quitDirective)

	stdout, stderr, err := s.Run(ctx, directives)
	if err != nil {
		return "", err
	}
	if stderr != "" {
		s.log.Debug("Toplevel stderr", "stderr", stderr)
	}

	// Stray escape sequences would break the prompt split even with TERM
	// scrubbed (some toplevel builds probe the terminal directly).
	clean := stripansi.Strip(stdout)

	// Transcript layout: startup banner | one segment per #use | the
	// command's own output | whatever trails the quit directive.
	want := 1 + len(files) + 2
	segments, err := SplitTranscript(clean, want)
	if err != nil {
		var malformed *MalformedTranscriptError
		if errors.As(err, &malformed) {
			malformed.Command = code
		}
		return "", err
	}

	// Every segment reaches exactly one classification; the first
	// non-normal one, in submission order, decides the outcome.
	for _, segment := range segments {
		class, msg := Classify(segment)
		switch class {
		case ClassNormal:
			continue
		case ClassIncomplete:
			return "", &IncompleteExpressionError{Command: code}
		case ClassUnimplemented:
			return "", &UnimplementedError{Command: code, Message: msg}
		default:
			return "", &InterpreterError{Kind: class, Message: msg}
		}
	}

	return segments[len(segments)-2], nil
}

// scrubTerm returns env with any TERM assignment removed.
func scrubTerm(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, "TERM=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}
