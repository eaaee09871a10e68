// Command tarjan plans the cheapest or fastest round trip from home through
// every stored relative.
//
// Usage:
//
//	tarjan plan [-weight time|cost] [-workers n] [-algorithm brute-force|held-karp]
//	            [-max-nodes n] [-format text|dot|geojson]
//	tarjan serve [-addr :8080]
//	tarjan locations list
//	tarjan locations add -name aunt -lat 50.50 -lng 30.49 [-street s] [-district d]
//	tarjan locations delete NAME
//	tarjan modes list
//	tarjan modes add -name bus -speed 30 -cost 0.12 -transfer 5
//	tarjan modes delete NAME
//
// Configuration comes from the environment and an optional .env file; see
// internal/config. Logs go to stderr, command output to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/tarjan/internal/config"
	"github.com/katalvlaran/tarjan/internal/logging"
	"github.com/katalvlaran/tarjan/internal/observability"
	"github.com/katalvlaran/tarjan/store"
)

const usage = `usage: tarjan <command> [flags]

commands:
  plan        solve the round trip over the stored dataset
  serve       run the HTTP API
  locations   list | add | delete relatives (name "home" is the home)
  modes       list | add | delete transport modes
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tarjan: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	cfg    config.Config
	log    logging.Logger
	store  store.Store
	stdout io.Writer
	stderr io.Writer
}

// run resolves configuration, opens the store and dispatches args[0].
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		if len(args) == 0 {
			return errUsage
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Exporter:    cfg.Trace,
		ServiceName: "tarjan",
		Output:      stderr,
	}, log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.WithoutCancel(ctx), shutdown, log)

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.Warn(ctx, "closing store", logging.Err(cerr))
		}
	}()

	a := &app{cfg: cfg, log: log, store: st, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "plan":
		return a.plan(ctx, args[1:])
	case "serve":
		return a.serve(ctx, args[1:])
	case "locations":
		return a.locations(ctx, args[1:])
	case "modes":
		return a.modes(ctx, args[1:])
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// openStore selects the backend named by cfg.Store.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func() error, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		fs := store.NewFileStore(cfg.RelativesPath(), cfg.ModesPath())
		return fs, func() error { return nil }, nil
	}
}
