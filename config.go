package focstest

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"

	"github.com/olin/focstest/flags"
	"github.com/olin/focstest/page"
	"github.com/olin/focstest/types"
)

// Config holds the application configuration
type Config struct {
	OcamlFile   string          // homework source file preloaded before every test
	URL         string          // page to scrape tests from
	UpdateCache bool            // refetch the page even when cached
	Selection   types.Selection // which suites to run
	Timeout     time.Duration   // time bound for one toplevel run
	OcamlBinary string          // toplevel binary to spawn
	Verbose     bool            // also report passing tests
	SaveTests   string          // when set, write parsed suites to this YAML file
	TestsFile   string          // when set, load suites from this YAML file instead of a page
	CacheDir    string          // page cache directory ("" = default)

	MetricsEnabled bool
	MetricsAddr    string

	Log log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, err
	}

	ocamlFile := ctx.Args().First()
	if _, err := os.Stat(ocamlFile); err != nil {
		return nil, fmt.Errorf("ocaml file %q: %w", ocamlFile, err)
	}

	selection, err := types.NewSelection(
		ctx.IntSlice(flags.UseSuites.Name),
		ctx.IntSlice(flags.SkipSuites.Name),
	)
	if err != nil {
		return nil, err
	}

	timeout := ctx.Duration(flags.Timeout.Name)
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}

	pageURL := ctx.String(flags.URL.Name)
	testsFile := ctx.String(flags.TestsFile.Name)
	if pageURL == "" && testsFile == "" {
		inferred, ok := page.InferURL(ocamlFile)
		if !ok {
			return nil, fmt.Errorf(
				"couldn't infer a page url from %q; name the file homeworkN.ml or pass --url or --tests-file",
				ocamlFile)
		}
		pageURL = inferred
	}

	return &Config{
		OcamlFile:      ocamlFile,
		URL:            pageURL,
		UpdateCache:    ctx.Bool(flags.UpdateCache.Name),
		Selection:      selection,
		Timeout:        timeout,
		OcamlBinary:    ctx.String(flags.OcamlBinary.Name),
		Verbose:        ctx.Bool(flags.Verbose.Name),
		SaveTests:      ctx.String(flags.SaveTests.Name),
		TestsFile:      testsFile,
		CacheDir:       ctx.String(flags.CacheDir.Name),
		MetricsEnabled: ctx.Bool(flags.MetricsEnabled.Name),
		MetricsAddr:    ctx.String(flags.MetricsAddr.Name),
		Log:            logger,
	}, nil
}
