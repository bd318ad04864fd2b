package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/config"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/logx"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/migrate"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/report"

	_ "github.com/Chapsvision-dev/cloudinary-migrate/internal/provider/cloudinary"
)

// Test seams, overridden in unit tests. Keep signatures in sync with packages.
var (
	loadConfig   func() (config.Config, error)                                                                      = config.Load
	newProvider  func(string, config.Config, config.Credentials) (provider.Provider, error)                         = provider.New
	runMigration func(context.Context, provider.Lister, provider.Uploader, migrate.Options) (*report.Report, error) = migrate.Run
	initLogging  func()                                                                                             = logx.InitFromEnv
	exit         func(int)                                                                                          = os.Exit

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// main wires CLI -> .env -> config -> two provider handles -> migration.
// Exit codes: 0 completed (even with per-resource failures), 1 config or
// fatal error, 2 usage error.
func main() {
	exit(execute(os.Args[1:]))
}

// exitError carries the process exit code out of cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n\n%s", err, cmd.UsageString())
	return 2
}

// loadEnvFile applies a .env file without overriding variables already set.
// A missing default file is fine; a missing explicit one is not.
func loadEnvFile(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		if errors.Is(err, config.ErrMissingCloudName) {
			fmt.Fprintln(stderr, "❌ Error: Credenciales faltantes en .env")
		}
		log.Error().Err(err).Msg("config error")
		return &exitError{code: 1, err: err}
	}

	// Two independent handles; nothing is reconfigured between phases.
	src, err := newProvider(cfg.Provider, cfg, cfg.Source)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.Provider).Str("cloud", cfg.Source.CloudName).Msg("provider init error")
		return &exitError{code: 1, err: err}
	}
	dst, err := newProvider(cfg.Provider, cfg, cfg.Dest)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.Provider).Str("cloud", cfg.Dest.CloudName).Msg("provider init error")
		return &exitError{code: 1, err: err}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runMigration(ctx, src, dst, migrate.OptionsFromConfig(cfg, stdout, stderr)); err != nil {
		err = errors.WithStack(err)
		fmt.Fprintf(stderr, "\n💥 Error crítico en la migración: %v\n", err)
		fmt.Fprintf(stderr, "\nDetalles del error: %+v\n", err)
		log.Error().Stack().Err(err).Str("action", "migrate").Msg("migration aborted")
		return &exitError{code: 1, err: err}
	}
	return nil
}
