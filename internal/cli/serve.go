package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/superdense/pkg/adapters/http"
	redisAdapter "github.com/aretw0/superdense/pkg/adapters/redis"
	"github.com/aretw0/superdense/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// NewPublisher connects the Redis event mirror, or returns nil when disabled.
func (rt *Runtime) NewPublisher(ctx context.Context) (*redisAdapter.Publisher, error) {
	cfg := rt.Config.Redis
	if !cfg.Enabled {
		return nil, nil
	}
	pub := redisAdapter.New(cfg.Addr, cfg.Password, cfg.DB,
		redisAdapter.WithPrefix(cfg.Prefix),
		redisAdapter.WithTTL(cfg.StateTTL),
		redisAdapter.WithLogger(rt.Logger),
	)
	if err := pub.Ping(ctx); err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Addr, err)
	}
	return pub, nil
}

// NewHTTPServer builds the HTTP adapter. pub may be nil.
func (rt *Runtime) NewHTTPServer(pub *redisAdapter.Publisher) *httpAdapter.Server {
	sessOpts := []session.Option{session.WithRunnerOptions(rt.RunnerOptions()...)}
	if pub != nil {
		sessOpts = append(sessOpts, session.WithSessionObserver(pub.Observer))
	}

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(rt.Logger),
		httpAdapter.WithCORS(rt.Config.Server.CORS),
		httpAdapter.WithSessionOptions(sessOpts...),
	}
	if h := rt.MetricsHandler(); h != nil {
		opts = append(opts, httpAdapter.WithMetricsHandler(h))
	}
	return httpAdapter.NewServer(rt.Engine, opts...)
}

// Serve runs the HTTP host until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, rt *Runtime) error {
	pub, err := rt.NewPublisher(ctx)
	if err != nil {
		return err
	}
	if pub != nil {
		defer pub.Close()
	}

	server := rt.NewHTTPServer(pub)
	srv := &http.Server{
		Addr:              rt.Config.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go server.Sessions.RunJanitor(janitorCtx, rt.Config.Session.TTL, rt.Config.Session.PruneInterval)

	serverErrors := make(chan error, 1)
	go func() {
		rt.Logger.Info("http server listening", "addr", srv.Addr, "redis", pub != nil, "metrics", rt.Metrics != nil)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		rt.Logger.Info("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.Logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
		return srv.Close()
	}
	rt.Logger.Info("http server stopped")
	return nil
}
