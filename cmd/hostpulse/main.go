package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"hostpulse/internal/adapters/http"
	"hostpulse/internal/adapters/ws"
	"hostpulse/internal/agent"
	"hostpulse/internal/config"
	"hostpulse/internal/logger"
	"hostpulse/internal/metrics"
	"hostpulse/internal/render"
	"hostpulse/internal/storage/snapshot"
	"hostpulse/internal/tui"
)

func main() {
	asJSON := flag.Bool("json", false, "snapshot: print JSON instead of the rendered summary")
	configFile := flag.String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [serve|snapshot|watch]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configFile != "" {
		os.Setenv("CONFIG_FILE", *configFile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	if mode := flag.Arg(0); mode != "" {
		cfg.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		flag.Usage()
		log.Fatalf("FATAL: %v", err)
	}

	appLog := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := metrics.NewSampler(metrics.SamplerConfigFrom(cfg), appLog)

	switch cfg.Mode {
	case config.ModeSnapshot:
		err = runSnapshot(ctx, sampler, cfg, *asJSON)
	case config.ModeWatch:
		err = tui.Run(ctx, sampler.Collect, cfg.WatchInterval, cfg.UnitDivisor)
	default:
		err = runServe(ctx, cfg, sampler, appLog)
	}

	if err != nil {
		appLog.Error("hostpulse failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func runSnapshot(ctx context.Context, sampler *metrics.Sampler, cfg *config.Config, asJSON bool) error {
	snap := sampler.Collect(ctx)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	_, err := fmt.Println(render.Snapshot(snap, cfg.UnitDivisor))
	return err
}

func runServe(ctx context.Context, cfg *config.Config, sampler *metrics.Sampler, log logger.Logger) error {
	log.Info("hostpulse: starting...", "agent_id", cfg.AgentID, "address", cfg.Address, "push", cfg.PushEnabled())

	store := snapshot.NewSystemStore()
	hub := ws.NewHub(log, store.Get)

	sinks := []metrics.Sink{store.Sink, hub.Sink}
	if cfg.PushEnabled() {
		reporter := agent.NewReporter(cfg.PushURL, cfg.AgentID, cfg.PushTimeout, log)
		sinks = append(sinks, reporter.Sink)
	}
	scheduler := metrics.NewScheduler(cfg.PushInterval, log, sampler.Collect, sinks...)

	router := http.NewRouter(cfg, log, &http.RouterDeps{
		Metrics: http.NewMetricsHandler(sampler, log),
		Ws:      ws.NewHandler(hub, log, cfg),
	})
	srv := http.NewServer(router, cfg.Address)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Live stream hub
	g.Go(func() error {
		return hub.Run(gCtx)
	})

	// 2. Scheduled sampling: latest store, stream, push
	g.Go(func() error {
		return scheduler.Start(gCtx)
	})

	// 3. HTTP server
	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("hostpulse stopped gracefully.")
	return nil
}
