package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/internal/httpapi"
	"github.com/katalvlaran/tarjan/internal/logging"
	"github.com/katalvlaran/tarjan/internal/observability"
	"github.com/katalvlaran/tarjan/metric"
	"github.com/katalvlaran/tarjan/planner"
	"github.com/katalvlaran/tarjan/render"
	"github.com/katalvlaran/tarjan/store"
	"github.com/katalvlaran/tarjan/tsp"
)

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

// parse parses args into fs. ok is false when the command must stop: either
// -h printed the flag usage (err is nil) or the arguments are invalid.
func parse(fs *flag.FlagSet, args []string) (ok bool, err error) {
	err = fs.Parse(args)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, flag.ErrHelp):
		return false, nil
	default:
		return false, errors.Join(errUsage, err)
	}
}

func (a *app) plan(ctx context.Context, args []string) error {
	fs := a.flags("plan")
	weight := fs.String("weight", "time", "optimization criterion: time or cost")
	workers := fs.Int("workers", a.cfg.Workers, "parallel search workers (0 = sequential)")
	algorithm := fs.String("algorithm", tsp.BruteForce.String(), "exact engine: brute-force or held-karp")
	maxNodes := fs.Int("max-nodes", a.cfg.MaxNodes, "largest number of relatives accepted")
	format := fs.String("format", "text", "output format: text, dot or geojson")
	if ok, err := parse(fs, args); !ok {
		return err
	}

	kind, err := metric.ParseKind(*weight)
	if err != nil {
		return err
	}
	algo, err := tsp.ParseAlgorithm(*algorithm)
	if err != nil {
		return err
	}
	if *workers < 0 {
		return fmt.Errorf("-workers=%d must be >= 0: %w", *workers, errUsage)
	}
	if *maxNodes < 1 || *maxNodes > tsp.MaxSupportedNodes {
		return fmt.Errorf("-max-nodes=%d outside [1,%d]: %w", *maxNodes, tsp.MaxSupportedNodes, errUsage)
	}
	switch *format {
	case "text", "dot", "geojson":
	default:
		return fmt.Errorf("-format=%q: %w", *format, errUsage)
	}

	d, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	svc := planner.NewService(a.log, nil,
		planner.WithWorkers(*workers),
		planner.WithMaxNodes(*maxNodes),
		planner.WithAlgorithm(algo),
	)
	res, err := svc.Plan(ctx, d.Locations, d.Home, d.Modes, kind)
	if err != nil {
		return err
	}

	switch *format {
	case "dot":
		return render.DOT(a.stdout, res.Graph, res.Route)
	case "geojson":
		return render.GeoJSON(a.stdout, res.Graph, res.Route)
	default:
		return render.Itinerary(a.stdout, res)
	}
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := a.flags("serve")
	addr := fs.String("addr", a.cfg.HTTPAddr, "listen address")
	if ok, err := parse(fs, args); !ok {
		return err
	}

	metrics, err := observability.NewPlannerCollector(nil)
	if err != nil {
		return err
	}
	svc := planner.NewService(a.log, metrics,
		planner.WithWorkers(a.cfg.Workers),
		planner.WithMaxNodes(a.cfg.MaxNodes),
	)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.New(a.store, svc, metrics, a.log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "serving HTTP API", logging.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info(ctx, "shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *app) locations(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("locations: expected list, add or delete: %w", errUsage)
	}
	switch args[0] {
	case "list":
		d, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTREET\tDISTRICT\tLAT\tLNG")
		all := d.Locations
		if d.Home != nil {
			all = append([]core.Location{*d.Home}, all...)
		}
		for _, l := range all {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.6f\t%.6f\n", l.ID, l.Street, l.District, l.Lat, l.Lng)
		}
		return tw.Flush()

	case "add":
		fs := a.flags("locations add")
		var loc core.Location
		fs.StringVar(&loc.ID, "name", "", "location name (\"home\" sets the home)")
		fs.StringVar(&loc.Street, "street", "", "street name")
		fs.StringVar(&loc.District, "district", "", "district")
		fs.Float64Var(&loc.Lat, "lat", 0, "latitude in decimal degrees")
		fs.Float64Var(&loc.Lng, "lng", 0, "longitude in decimal degrees")
		if ok, err := parse(fs, args[1:]); !ok {
			return err
		}
		if err := store.AddLocation(ctx, a.store, loc); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "added location %s\n", loc.ID)
		return nil

	case "delete":
		name, err := oneName(args[1:])
		if err != nil {
			return err
		}
		if err = store.DeleteLocation(ctx, a.store, name); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "deleted location %s\n", name)
		return nil

	default:
		return fmt.Errorf("locations %s: %w", args[0], errUsage)
	}
}

func (a *app) modes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("modes: expected list, add or delete: %w", errUsage)
	}
	switch args[0] {
	case "list":
		d, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSPEED_KMH\tCOST_PER_KM\tTRANSFER_MIN")
		for _, m := range d.Modes {
			fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", m.Name, m.SpeedKmh, m.CostPerKm, m.TransferTimeMin)
		}
		return tw.Flush()

	case "add":
		fs := a.flags("modes add")
		var m core.TransportMode
		fs.StringVar(&m.Name, "name", "", "mode name")
		fs.Float64Var(&m.SpeedKmh, "speed", 0, "speed in km/h")
		fs.Float64Var(&m.CostPerKm, "cost", 0, "cost per km")
		fs.Float64Var(&m.TransferTimeMin, "transfer", 0, "transfer time in minutes")
		if ok, err := parse(fs, args[1:]); !ok {
			return err
		}
		if err := store.AddMode(ctx, a.store, m); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "added mode %s\n", m.Name)
		return nil

	case "delete":
		name, err := oneName(args[1:])
		if err != nil {
			return err
		}
		if err = store.DeleteMode(ctx, a.store, name); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "deleted mode %s\n", name)
		return nil

	default:
		return fmt.Errorf("modes %s: %w", args[0], errUsage)
	}
}

func oneName(args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("expected exactly one name: %w", errUsage)
	}

	return args[0], nil
}
