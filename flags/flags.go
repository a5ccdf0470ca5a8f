package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "FOCSTEST"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	URL = &cli.StringFlag{
		Name:    "url",
		Value:   "",
		EnvVars: prefixEnvVars("URL"),
		Usage:   "Url to scrape tests from (usually inferred from the ocaml file name)",
	}
	UpdateCache = &cli.BoolFlag{
		Name:    "update-cache",
		Aliases: []string{"uc"},
		Value:   false,
		EnvVars: prefixEnvVars("UPDATE_CACHE"),
		Usage:   "Refetch the page even when a cached copy exists",
	}
	UseSuites = &cli.IntSliceFlag{
		Name:    "use-suites",
		Aliases: []string{"u"},
		EnvVars: prefixEnvVars("USE_SUITES"),
		Usage:   "Test suites to use exclusively, indexed from 1",
	}
	SkipSuites = &cli.IntSliceFlag{
		Name:    "skip-suites",
		Aliases: []string{"s"},
		EnvVars: prefixEnvVars("SKIP_SUITES"),
		Usage:   "Test suites to skip, indexed from 1",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   5 * time.Second,
		EnvVars: prefixEnvVars("TIMEOUT"),
		Usage:   "Time bound for one toplevel run; expiry aborts the whole test run",
	}
	OcamlBinary = &cli.StringFlag{
		Name:    "ocaml-binary",
		Value:   "ocaml",
		EnvVars: prefixEnvVars("OCAML_BINARY"),
		Usage:   "Path to the ocaml toplevel binary",
	}
	Verbose = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Value:   false,
		EnvVars: prefixEnvVars("VERBOSE"),
		Usage:   "Also report passing tests and their comparison details",
	}
	SaveTests = &cli.StringFlag{
		Name:    "save-tests",
		Value:   "",
		EnvVars: prefixEnvVars("SAVE_TESTS"),
		Usage:   "Write the parsed test suites to this YAML file",
	}
	TestsFile = &cli.StringFlag{
		Name:    "tests-file",
		Value:   "",
		EnvVars: prefixEnvVars("TESTS_FILE"),
		Usage:   "Load test suites from this YAML file instead of a webpage",
	}
	CacheDir = &cli.StringFlag{
		Name:    "cache-dir",
		Value:   "",
		EnvVars: prefixEnvVars("CACHE_DIR"),
		Usage:   "Page cache directory (defaults to a focstest-cache dir under the system temp dir)",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log.level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Lowest log level that will be output: trace, debug, info, warn, error or crit",
	}
	MetricsEnabled = &cli.BoolFlag{
		Name:    "metrics.enabled",
		Value:   false,
		EnvVars: prefixEnvVars("METRICS_ENABLED"),
		Usage:   "Serve /healthz and Prometheus /metrics while the run is in flight",
	}
	MetricsAddr = &cli.StringFlag{
		Name:    "metrics.addr",
		Value:   "127.0.0.1:7300",
		EnvVars: prefixEnvVars("METRICS_ADDR"),
		Usage:   "Listen address for the health and metrics server",
	}
)

var Flags = []cli.Flag{
	URL,
	UpdateCache,
	UseSuites,
	SkipSuites,
	Timeout,
	OcamlBinary,
	Verbose,
	SaveTests,
	TestsFile,
	CacheDir,
	LogLevel,
	MetricsEnabled,
	MetricsAddr,
}

// CheckRequired validates the positional arguments: exactly one OCaml file.
func CheckRequired(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 0:
		return fmt.Errorf("missing required argument: the ocaml file to test against")
	case 1:
		return nil
	default:
		return fmt.Errorf("expected exactly one ocaml file, got %d arguments", ctx.NArg())
	}
}
