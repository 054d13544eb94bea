// Package cli wires configuration, engine and hosts for the superdense binary.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/config"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/observability"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runtime bundles the shared pieces every command builds from config.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	Engine  *superdense.Engine
	Metrics *observability.Metrics

	registry *prometheus.Registry
}

// NewRuntime creates the engine with debug and metric hooks.
// Metrics are only collected when enabled in cfg.
func NewRuntime(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	hooks := []domain.LifecycleHooks{observability.LogHooks(logger)}
	if cfg.Metrics.Enabled {
		rt.registry = prometheus.NewRegistry()
		rt.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := observability.NewMetrics(rt.registry)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		rt.Metrics = m
		hooks = append(hooks, m.Hooks())
	}

	opts := []superdense.Option{
		superdense.WithLogger(logger),
		superdense.WithLifecycleHooks(observability.CombineHooks(hooks...)),
	}
	if cfg.Protocol.Seed != 0 {
		opts = append(opts, superdense.WithRandomSource(outcome.NewSeededSource(cfg.Protocol.Seed)))
	}
	rt.Engine = superdense.New(opts...)
	return rt, nil
}

// RunnerOptions returns the runner settings derived from config.
func (rt *Runtime) RunnerOptions() []runner.Option {
	return []runner.Option{
		runner.WithPeriod(rt.Config.Protocol.Period),
		runner.WithLogger(rt.Logger),
	}
}

// MetricsHandler exposes the registry, or nil when metrics are disabled.
func (rt *Runtime) MetricsHandler() http.Handler {
	if rt.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})
}
