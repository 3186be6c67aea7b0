package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/config"
	"github.com/snipurl/snip-cli/internal/infrastructure/logger"
	"github.com/snipurl/snip-cli/internal/infrastructure/telemetry"
	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/snipurl/snip-cli/internal/session"
	"github.com/snipurl/snip-cli/internal/storage/querycache"
	"github.com/snipurl/snip-cli/internal/transport/cli"
	"github.com/snipurl/snip-cli/pkg/httpclient"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var shutdownTracer func(context.Context) error
	if cfg.OTel.Enabled {
		shutdownTracer, err = telemetry.Init(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
			shutdownTracer = nil
		}
	}

	store, err := session.NewFileStore(cfg.Session.Dir)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}

	transportOpts := httpclient.Options{
		Timeout:     cfg.API.Timeout,
		MaxFailures: cfg.API.MaxFailures,
		OpenFor:     cfg.API.CBInterval,
	}
	if cfg.OTel.Enabled {
		transportOpts.Transport = otelhttp.NewTransport(nil)
	}

	client := api.New(cfg.API.BaseURL, httpclient.New(transportOpts),
		api.WithTokenSource(store),
		// An expired or revoked token ends the session: the next protected
		// command hits the local guard and points back to login.
		api.WithUnauthorizedHook(func() {
			if err := store.Clear(); err != nil {
				logger.Warn("Failed to clear expired session", zap.Error(err))
			}
		}),
	)

	var cache *querycache.Cache
	if cfg.Cache.Enabled {
		cache, err = querycache.New(querycache.Config{
			MaxEntries: cfg.Cache.MaxEntries,
			TTL:        cfg.Cache.TTL,
		})
		if err != nil {
			logger.Warn("Failed to initialize query cache, continuing without it", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// A disabled cache must reach the services as a true nil interface, not a
	// typed nil pointer, so their nil checks short-circuit to direct fetches.
	var linksCache links.Cache
	var analyticsCache analytics.QueryCache
	if cache != nil {
		linksCache = cache
		analyticsCache = cache
	}

	app := &cli.App{
		Store:     store,
		API:       client,
		Links:     links.NewService(client, linksCache),
		Analytics: analytics.NewService(client, analyticsCache),
		ShortBase: cfg.API.ShortBase,
		Version:   cfg.App.Version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(app)
	cmdErr := root.ExecuteContext(ctx)

	if shutdownTracer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = shutdownTracer(shutdownCtx)
		cancel()
	}

	if cmdErr != nil {
		cli.RenderNotice(os.Stderr, cmdErr)
		logger.Sync()
		os.Exit(1)
	}
}
