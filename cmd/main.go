package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	focstest "github.com/olin/focstest"
	"github.com/olin/focstest/exitcodes"
	"github.com/olin/focstest/flags"
	"github.com/olin/focstest/service"
)

var (
	Version   = "v1.0.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "focstest"
	app.Usage = "Scrapes and runs OCaml doctests from the FoCS course pages"
	app.ArgsUsage = "<ocaml-file>"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			cli.HandleExitCoder(cli.Exit(err.Error(), errExitCode(err)))
		}
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer otelShutdown()

	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

// errExitCode maps a typed application error to the process exit code.
// Fatal conditions exit with RuntimeErr; test failures and anything
// unclassified exit with TestFailure.
func errExitCode(err error) int {
	if focstest.IsRuntimeError(err) {
		return exitcodes.RuntimeErr
	}
	return exitcodes.TestFailure
}

func run(ctx *cli.Context) error {
	logger, err := focstest.NewLogger(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return focstest.NewRuntimeError(err)
	}

	cfg, err := focstest.NewConfig(ctx, logger)
	if err != nil {
		return focstest.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	if cfg.MetricsEnabled {
		svc := service.New(cfg.MetricsAddr, logger)
		svc.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svc.Shutdown(shutdownCtx); err != nil {
				logger.Error("Health server shutdown failed", "err", err)
			}
		}()
	}

	tester, err := focstest.New(ctx.Context, cfg, Version)
	if err != nil {
		return focstest.NewRuntimeError(err)
	}
	return tester.Start(ctx.Context)
}
