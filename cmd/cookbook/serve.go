package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/cache"
	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/httpapi"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/registry"
	"github.com/hammamikhairi/cookbook/internal/resolver"
	"github.com/hammamikhairi/cookbook/internal/tracing"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the cookbook HTTP API until interrupted.

Example:
  cookbook serve                          # listen on server.addr (default :8080)
  cookbook serve --addr 127.0.0.1:9000
  cookbook serve --seed catalog.yaml      # preload a YAML catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
	cmd.Flags().String("seed", "", "YAML catalog to load at startup (overrides seed)")
	cmd.Flags().Bool("strict-status", false, "answer not-found with 404 and conflicts with 409")

	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	_ = a.v.BindPFlag("server.strict_status", cmd.Flags().Lookup("strict-status"))
	return cmd
}

// service is the wired server side: registry, resolver and HTTP handler.
type service struct {
	registry *registry.MemoryRegistry
	handler  *httpapi.Handler
	tracing  *tracing.Provider
}

// newService wires the server components from cfg and loads the seed
// catalog, if any.
func newService(ctx context.Context, cfg config.Config, log *logger.Logger) (*service, error) {
	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("creating tracer: %w", err)
	}

	reg := registry.NewMemoryRegistry(log.Named("registry"))
	if cfg.Seed != "" {
		n, err := seedFrom(ctx, reg, cfg.Seed)
		if err != nil {
			_ = provider.Shutdown(ctx)
			return nil, err
		}
		log.Info("seeded %d items from %s", n, cfg.Seed)
	}

	opts := []resolver.Option{resolver.WithTracer(provider.Tracer())}
	if cfg.Cache.Enabled {
		summaries := cache.New[*domain.Summary]("summaries",
			cfg.Cache.TTL, cfg.Cache.CleanupInterval, log.Named("cache"))
		opts = append(opts, resolver.WithCache(summaries))
	}

	return &service{
		registry: reg,
		handler: httpapi.NewHandler(httpapi.HandlerConfig{
			Store:        reg,
			Summarizer:   resolver.New(reg, log.Named("resolver"), opts...),
			Log:          log.Named("http"),
			Tracer:       provider.Tracer(),
			StrictStatus: cfg.Server.StrictStatus,
		}),
		tracing: provider,
	}, nil
}

func seedFrom(ctx context.Context, store domain.ItemStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed catalog: %w", err)
	}
	defer f.Close()

	n, err := registry.LoadYAML(ctx, store, f)
	if err != nil {
		return n, fmt.Errorf("seeding from %s: %w", path, err)
	}
	return n, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := svc.tracing.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("flushing traces: %v", err)
		}
	}()

	srv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:         a.cfg.Server.Addr,
		Handler:      svc.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, display.RenderBanner())
	a.printer.PrintHint(fmt.Sprintf("listening on %s (%d items)", srv.Addr(), svc.registry.Len()))
	a.log.Info("listening on %s", srv.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}
