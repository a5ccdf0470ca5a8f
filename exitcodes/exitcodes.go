// Package exitcodes defines the standard exit codes used by focstest.
package exitcodes

// Exit code constants used by focstest:
//
// * Success (0): all selected tests passed
// * TestFailure (1): one or more tests failed their comparison
// * RuntimeErr (2): fatal conditions - interpreter errors or exceptions,
//   timeouts, malformed configuration, fetch failures
const (
	Success     = 0
	TestFailure = 1
	RuntimeErr  = 2
)
