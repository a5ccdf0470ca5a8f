package repl

import "strings"

// Prompt is the marker the toplevel prints before reading each directive.
// It is the sole segment delimiter; segmentation relies on ordinary output
// never containing this exact sequence.
const Prompt = "# "

// SplitTranscript splits a raw stdout transcript on the interactive prompt
// marker into trimmed segments, one per directive plus the startup banner.
// A segment count other than want returns a MalformedTranscriptError (with
// Command left for the caller to fill in).
func SplitTranscript(stdout string, want int) ([]string, error) {
	parts := strings.Split(stdout, Prompt)
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = strings.TrimSpace(p)
	}
	if len(segments) != want {
		return nil, &MalformedTranscriptError{
			Stdout: stdout,
			Got:    len(segments),
			Want:   want,
		}
	}
	return segments, nil
}
