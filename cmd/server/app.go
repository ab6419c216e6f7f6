package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"studylab/internal/member"
	"studylab/internal/member/notifier"
	memberService "studylab/internal/member/service"
	memberStore "studylab/internal/member/store"
	"studylab/internal/platform/config"
	"studylab/internal/platform/kafka"
	"studylab/internal/platform/metrics"
	"studylab/internal/platform/postgres"
	"studylab/internal/platform/redis"
	"studylab/internal/probe"
	"studylab/internal/study"
	studyMetrics "studylab/internal/study/metrics"
	studyService "studylab/internal/study/service"
	studyStore "studylab/internal/study/store"
	"studylab/pkg/platform/circuit"
)

// app holds the wired handlers for the router.
type app struct {
	studyHandler  *study.Handler
	memberHandler *member.Handler
	probe         *probe.Handler
	httpMetrics   *metrics.Metrics
}

// buildApp selects the backing services from cfg. Unset URLs fall back to
// in-process implementations so the server runs with no infrastructure.
func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (*app, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*app, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	checks := map[string]probe.Checker{}
	sm := studyMetrics.New(reg)

	var (
		members memberService.Store
		studies studyService.Store
	)
	if cfg.UsesPostgres() {
		db, err := postgres.Open(ctx, postgres.Options{
			DSN:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			return fail(err)
		}
		members = memberStore.NewPostgres(db)
		studies = studyStore.NewPostgres(db)
		checks["postgres"] = probe.CheckFunc(db.PingContext)
	} else {
		members = memberStore.NewInMemory()
		studies = studyStore.NewInMemory()
	}

	if cfg.UsesRedis() {
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = rc.Close() })
		studies = studyStore.NewRedisCache(studies, rc.Client,
			studyStore.WithCacheTTL(cfg.Redis.StudyCacheTTL),
			studyStore.WithCacheLogger(log),
			studyStore.WithCacheMetrics(sm),
			studyStore.WithCacheBreaker(newCacheBreaker()),
		)
		checks["redis"] = rc
	}

	var n memberService.Notifier
	if cfg.UsesKafka() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, producer.Close)
		if err := kafka.EnsureTopic(ctx, producer, cfg.Kafka.NotifyTopic, 1, 1); err != nil {
			return fail(fmt.Errorf("ensure notify topic: %w", err))
		}
		n = notifier.NewKafkaNotifier(producer, cfg.Kafka.NotifyTopic)
		checks["kafka"] = probe.CheckFunc(producer.Ping)
	} else {
		n = notifier.NewLogNotifier(log)
	}

	memberSvc := member.NewService(members, n, memberService.WithLogger(log))
	studySvc := study.NewService(memberSvc, studies,
		studyService.WithLogger(log),
		studyService.WithMetrics(sm),
	)

	return &app{
		studyHandler:  study.NewHandler(studySvc, log),
		memberHandler: member.NewHandler(memberSvc, log),
		probe:         probe.New(checks),
		httpMetrics:   metrics.New(reg),
	}, cleanup, nil
}

// newCacheBreaker closes on the first successful probe so a recovered redis is
// back in use within one cooldown.
func newCacheBreaker() *circuit.Breaker {
	return circuit.New("study-cache",
		circuit.WithFailureThreshold(5),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(10*time.Second),
	)
}
