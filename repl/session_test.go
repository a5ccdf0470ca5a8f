package repl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeToplevel writes a shell script standing in for the ocaml binary.
// It must tolerate the -noinit argument the session always passes.
func writeFakeToplevel(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ocaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// fakeToplevel mimics the real prompt protocol: a startup banner, then one
// prompt-delimited segment per directive.
const fakeToplevel = `#!/bin/sh
printf 'Fake OCaml version 1\n'
while IFS= read -r line; do
  case "$line" in
  '#quit;;')
    printf '# '
    exit 0
    ;;
  '#use'*)
    printf '# val double : int -> int = <fun>\n'
    ;;
  'boom;;')
    printf '# Exception: Failure "boom".\n'
    ;;
  'stub;;')
    printf '# Exception: Failure "Not implemented".\n'
    ;;
  *)
    printf '# - : int = 4\n'
    ;;
  esac
done
`

func newTestSession(t *testing.T, binary string, timeout time.Duration) *Session {
	t.Helper()
	s, err := NewSession(Config{Binary: binary, Timeout: timeout})
	require.NoError(t, err)
	return s
}

func TestSessionEval(t *testing.T) {
	binary := writeFakeToplevel(t, fakeToplevel)
	s := newTestSession(t, binary, 5*time.Second)

	out, err := s.Eval(context.Background(), "double 2;;", []string{"homework1.ml"})
	require.NoError(t, err)
	assert.Equal(t, "- : int = 4", out)
}

func TestSessionEvalNoPreload(t *testing.T) {
	binary := writeFakeToplevel(t, fakeToplevel)
	s := newTestSession(t, binary, 5*time.Second)

	out, err := s.Eval(context.Background(), "1 + 3;;", nil)
	require.NoError(t, err)
	assert.Equal(t, "- : int = 4", out)
}

func TestSessionEvalInterpreterFault(t *testing.T) {
	binary := writeFakeToplevel(t, fakeToplevel)
	s := newTestSession(t, binary, 5*time.Second)

	_, err := s.Eval(context.Background(), "boom;;", nil)
	require.Error(t, err)

	var interpErr *InterpreterError
	require.True(t, errors.As(err, &interpErr))
	assert.Equal(t, ClassException, interpErr.Kind)
	assert.Contains(t, interpErr.Message, "Failure \"boom\"")
	assert.True(t, IsFatal(err))
}

func TestSessionEvalUnimplemented(t *testing.T) {
	binary := writeFakeToplevel(t, fakeToplevel)
	s := newTestSession(t, binary, 5*time.Second)

	_, err := s.Eval(context.Background(), "stub;;", nil)
	require.Error(t, err)

	var unimplErr *UnimplementedError
	require.True(t, errors.As(err, &unimplErr))
	assert.Equal(t, "stub;;", unimplErr.Command)
	assert.False(t, IsFatal(err))
}

func TestSessionEvalMalformedTranscript(t *testing.T) {
	// A toplevel that swallows its prompts yields too few segments.
	binary := writeFakeToplevel(t, "#!/bin/sh\nprintf 'banner only\\n'\ncat >/dev/null\n")
	s := newTestSession(t, binary, 5*time.Second)

	_, err := s.Eval(context.Background(), "1;;", nil)
	require.Error(t, err)

	var malformed *MalformedTranscriptError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "1;;", malformed.Command)
	assert.True(t, IsSkippable(err))
}

func TestSessionRunTimeout(t *testing.T) {
	binary := writeFakeToplevel(t, "#!/bin/sh\nexec sleep 30\n")
	s := newTestSession(t, binary, 100*time.Millisecond)

	_, _, err := s.Run(context.Background(), []string{"1;;", "#quit;;"})
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
	assert.True(t, IsFatal(err))
}

func TestSessionRunMissingBinary(t *testing.T) {
	s := newTestSession(t, filepath.Join(t.TempDir(), "does-not-exist"), time.Second)

	_, _, err := s.Run(context.Background(), []string{"#quit;;"})
	require.Error(t, err)
	assert.False(t, IsFatal(err))
}

func TestUseDirective(t *testing.T) {
	assert.Equal(t, `#use "homework1.ml";;`, UseDirective("homework1.ml"))
}

func TestScrubTerm(t *testing.T) {
	env := []string{"HOME=/home/x", "TERM=xterm-256color", "PATH=/bin"}
	scrubbed := scrubTerm(env)
	assert.Equal(t, []string{"HOME=/home/x", "PATH=/bin"}, scrubbed)
}
