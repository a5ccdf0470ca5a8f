package repl

import "strings"

// Classification describes what a transcript segment represents.
type Classification int

const (
	// ClassNormal is ordinary evaluation output.
	ClassNormal Classification = iota
	// ClassError is a toplevel error (e.g. "Error: Unbound value foo").
	ClassError
	// ClassException is a raised OCaml exception.
	ClassException
	// ClassUnimplemented is a "not implemented" style exception, the
	// conventional failwith stub in unfinished homework.
	ClassUnimplemented
	// ClassIncomplete means the submitted command did not form a complete
	// statement, so the quit directive was swallowed by the parser.
	ClassIncomplete
)

func (c Classification) String() string {
	switch c {
	case ClassNormal:
		return "normal"
	case ClassError:
		return "error"
	case ClassException:
		return "exception"
	case ClassUnimplemented:
		return "unimplemented"
	case ClassIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

const (
	errorMarker     = "Error:"
	exceptionMarker = "Exception:"

	// incompleteDiagnostic is what the toplevel reports when #quit;; gets
	// parsed as a method call on the preceding unterminated expression.
	incompleteDiagnostic = "It has no method quit"
)

// Classify inspects one transcript segment and returns its classification
// along with the extracted diagnostic message (empty for ClassNormal).
// Classify is pure: the result depends only on the segment text.
//
// The toplevel's diagnostics are unstructured free text, so detection is
// marker-based: the earliest occurrence of "Error:" or "Exception:" wins,
// and the message is extended leftward to the nearest preceding location
// marker ("Characters" or "File") to keep position info attached.
func Classify(segment string) (Classification, string) {
	kind, loc := findMarker(segment)
	if loc == -1 {
		return ClassNormal, ""
	}

	msg := segment[contextStart(segment, loc):]
	if strings.Contains(msg, incompleteDiagnostic) {
		return ClassIncomplete, msg
	}
	// Catches the variety of "unimplemented"-like failwith messages.
	if strings.Contains(strings.ToLower(msg), "implemented") {
		return ClassUnimplemented, msg
	}
	return kind, msg
}

// findMarker locates the earliest error/exception keyword in the segment.
func findMarker(segment string) (Classification, int) {
	errLoc := strings.Index(segment, errorMarker)
	excLoc := strings.Index(segment, exceptionMarker)

	switch {
	case errLoc == -1 && excLoc == -1:
		return ClassNormal, -1
	case excLoc == -1 || (errLoc != -1 && errLoc < excLoc):
		return ClassError, errLoc
	default:
		return ClassException, excLoc
	}
}

// contextStart walks left from the keyword to the closest location marker,
// so messages like "Characters 4-9:\n  Error: ..." stay intact.
func contextStart(segment string, loc int) int {
	if i := strings.LastIndex(segment[:loc], "Characters"); i != -1 {
		return i
	}
	if i := strings.LastIndex(segment[:loc], "File"); i != -1 {
		return i
	}
	return loc
}
