package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/gridsim/pkg/algorithms"
	"github.com/dd0wney/gridsim/pkg/config"
	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/gridfile"
	"github.com/dd0wney/gridsim/pkg/health"
	"github.com/dd0wney/gridsim/pkg/logging"
	"github.com/dd0wney/gridsim/pkg/metrics"
	"github.com/dd0wney/gridsim/pkg/report"
	"github.com/dd0wney/gridsim/pkg/simulation"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gridsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	gridPath := fs.String("grid", "", "YAML grid document (prompts on stdin when empty)")
	percent := fs.Float64("percent", 0, "Load increase percentage to simulate (prompts when omitted)")
	metricsAddr := fs.String("metrics-addr", "", "Serve /metrics and /health on this address until interrupted")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	percentSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "percent" {
			percentSet = true
		}
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsAddr != "" {
		cfg.Metrics.ListenAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.LogLevel)).With(logging.Component("cli"))
	reg := metrics.NewRegistry()
	printer := report.NewPrinter(stdout, cfg.Report.Unit)

	// Bind before prompting so a busy port fails fast
	var ln net.Listener
	if cfg.Metrics.ListenAddr != "" {
		ln, err = net.Listen("tcp", cfg.Metrics.ListenAddr)
		if err != nil {
			logger.Error("metrics listener failed", logging.String("addr", cfg.Metrics.ListenAddr), logging.Error(err))
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		defer ln.Close()
	}

	prompts := newPrompter(stdin, stdout, cfg.Report.Unit)

	var g *grid.Grid
	if *gridPath != "" {
		logger = logger.With(logging.Path(*gridPath))
		g, err = gridfile.LoadFile(*gridPath)
	} else {
		g, err = prompts.readGrid()
	}
	if err != nil {
		if kind := rejectionKind(err); kind != "" {
			reg.RecordRejectedInput(kind)
		}
		logger.Error("grid input rejected", logging.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	printer.Grid(g)
	printer.InitialOverloads(g, algorithms.CheckOverloads(g))
	connected := algorithms.IsConnected(g)
	printer.Connectivity(connected)
	reg.RecordGrid(g.NodeCount(), g.EdgeCount(), connected)
	logger.Info("grid loaded",
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Bool("connected", connected))

	p := *percent
	switch {
	case percentSet:
	case *gridPath != "":
		p = cfg.Simulation.DefaultPercent
	default:
		if p, err = prompts.readPercent(); err != nil {
			logger.Error("percentage input rejected", logging.Error(err))
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	sim := simulation.NewSimulator(simulation.WithLogger(logger), simulation.WithMetrics(reg))
	result, err := sim.PredictFailures(ctx, g, p)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	printer.Simulation(g, result)

	if ln != nil {
		checker := health.NewChecker()
		checker.Register("grid", health.GridCheck(g))
		checker.Register("forecast", health.ForecastCheck(result))
		if err := serve(ctx, ln, reg, checker, logger); err != nil {
			logger.Error("http server failed", logging.Error(err))
			return exitError
		}
	}
	return exitOK
}

// serve exposes /metrics and /health on ln until ctx is done
func serve(ctx context.Context, ln net.Listener, reg *metrics.Registry, checker *health.Checker, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	mux.Handle("/health", checker.HTTPHandler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving metrics and health", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// rejectionKind maps grid construction errors to metric labels
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, grid.ErrInvalidSize):
		return "size"
	case errors.Is(err, grid.ErrInvalidNodeIndex),
		errors.Is(err, grid.ErrInvalidNodeSpec),
		errors.Is(err, grid.ErrDuplicateNodeIndex):
		return "node"
	case errors.Is(err, grid.ErrInvalidEdgeIndex),
		errors.Is(err, grid.ErrInvalidEdgeSpec),
		errors.Is(err, errNegativeEdgeCount):
		return "edge"
	}
	return ""
}
