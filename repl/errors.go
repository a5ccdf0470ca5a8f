package repl

import (
	"errors"
	"fmt"
	"time"
)

// MalformedTranscriptError means the transcript could not be split into the
// expected number of prompt-delimited segments. This is a harness-level
// failure, not a test failure: pass/fail could not even be determined.
type MalformedTranscriptError struct {
	Command string // the command whose run produced the transcript
	Stdout  string // raw transcript, kept for diagnosis
	Got     int
	Want    int
}

func (e *MalformedTranscriptError) Error() string {
	return fmt.Sprintf("malformed transcript for %q: got %d segments, want %d", e.Command, e.Got, e.Want)
}

// IncompleteExpressionError means the submitted command, standalone, does
// not form a complete statement. The source command is at fault (likely a
// missing ";;"), not the interpreter.
type IncompleteExpressionError struct {
	Command string
}

func (e *IncompleteExpressionError) Error() string {
	return fmt.Sprintf("incomplete OCaml expression: %q", e.Command)
}

// UnimplementedError is a "not implemented" exception from a homework stub.
type UnimplementedError struct {
	Command string
	Message string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: %q", e.Message, e.Command)
}

// InterpreterError is a genuine toplevel error or raised exception, fatal
// to the whole run.
type InterpreterError struct {
	Kind    Classification // ClassError or ClassException
	Message string
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("ocaml %s: %s", e.Kind, e.Message)
}

// TimeoutError means the toplevel did not exit within the bound. The child
// has already been killed by the time this is returned.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("ocaml process timed out after %v", e.Timeout)
}

// IsFatal reports whether err must abort the entire remaining run rather
// than just the current test case.
func IsFatal(err error) bool {
	var interpErr *InterpreterError
	var timeoutErr *TimeoutError
	return errors.As(err, &interpErr) || errors.As(err, &timeoutErr)
}

// IsSkippable reports whether err is recoverable by skipping the current
// case alone (the command could not be evaluated standalone).
func IsSkippable(err error) bool {
	var incompleteErr *IncompleteExpressionError
	var malformedErr *MalformedTranscriptError
	return errors.As(err, &incompleteErr) || errors.As(err, &malformedErr)
}
