package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"studylab/internal/platform/config"
	"studylab/internal/platform/httpserver"
	"studylab/internal/platform/logger"
	"studylab/internal/platform/tracing"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studylab: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, cleanup, err := buildApp(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := httpserver.New(cfg.Addr, newRouter(a, reg, log, cfg.RequestTimeout))
	log.InfoContext(ctx, "starting studylab",
		"addr", cfg.Addr,
		"postgres", cfg.UsesPostgres(),
		"redis", cfg.UsesRedis(),
		"kafka", cfg.UsesKafka(),
		"tracing", cfg.UsesTracing(),
	)
	return httpserver.ListenAndRun(ctx, srv, cfg.ShutdownTimeout, log)
}
