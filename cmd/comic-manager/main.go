package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pawlakmarek/comic-manager/internal/application"
	"github.com/pawlakmarek/comic-manager/internal/cli"
	"github.com/pawlakmarek/comic-manager/internal/config"
	"github.com/pawlakmarek/comic-manager/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}

// run parses args, loads configuration and executes the selected command,
// returning the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool), logOpts ...logging.Option) int {
	inv, err := cli.Parse(args, cli.WithOutput(stderr))
	if err != nil {
		// The parser has already reported the usage error.
		return 1
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: inv.ConfigFile,
		EnvFile:    inv.EnvFile,
		LogLevel:   inv.LogLevel,
		LookupEnv:  lookupEnv,
	})
	if err != nil {
		var missing *config.MissingEnvError
		if errors.As(err, &missing) {
			fmt.Fprintln(stderr, missing.Error())
			return 1
		}
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, logOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, stdout)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	if err := app.Run(ctx, inv); err != nil {
		logger.Error("command failed", zap.Error(err))
		return 1
	}
	return 0
}
