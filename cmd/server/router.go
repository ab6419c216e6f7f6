package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"studylab/internal/platform/metrics"
	"studylab/internal/platform/middleware"
)

func newRouter(a *app, gatherer prometheus.Gatherer, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.LatencyMiddleware(a.httpMetrics))

	a.probe.Register(r)
	a.studyHandler.Register(r)
	a.memberHandler.Register(r)
	r.Handle("/metrics", metrics.Handler(gatherer))
	return r
}
