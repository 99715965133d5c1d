package app

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/accountservice"
	"github.com/haguru/folio/internal/auth"
	"github.com/haguru/folio/internal/cache"
	"github.com/haguru/folio/internal/functions"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
	"github.com/haguru/folio/internal/middleware"
	"github.com/haguru/folio/internal/postservice"
	"github.com/haguru/folio/internal/ratelimit"
	"github.com/haguru/folio/internal/render"
	"github.com/haguru/folio/internal/routes"
	"github.com/haguru/folio/internal/server"
	"github.com/haguru/folio/internal/session"
	"github.com/haguru/folio/pkg/helper"
	pkgmetrics "github.com/haguru/folio/pkg/metrics"
	"github.com/haguru/folio/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	STARTUP_TIMEOUT  = 30 * time.Second
	SHUTDOWN_TIMEOUT = 15 * time.Second
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     *server.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	Store      *Store
	Cache      interfaces.PageCache
	privateKey *ecdsa.PrivateKey
}

// NewApp creates and configures a new App instance.
func NewApp(configPath, envPath string) (*App, error) {
	cfg, err := LoadConfig(configPath, envPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics = app.initializeMetrics()

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), STARTUP_TIMEOUT)
	defer cancel()

	app.Store, err = OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := app.Store.EnsureIndices(ctx); err != nil {
		app.close()
		return nil, err
	}

	app.Cache, err = cache.New(cfg.Cache, logger, app.Metrics)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to initialize page cache: %w", err)
	}

	if err := app.initializeServer(); err != nil {
		app.close()
		return nil, err
	}

	return app, nil
}

func (app *App) initializeServer() error {
	cfg := app.Config
	logger := app.Logger

	limiter, err := ratelimit.NewLimiter(app.Store.RateLimits, cfg.RateLimiting.Actions, logger, app.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	accountService := accountservice.NewAccountService(app.Store.Accounts, app.Store.Users, app.Store.Tokens,
		limiter, app.privateKey, cfg.Session.TokenTTL, logger, app.Metrics)
	postService := postservice.NewPostService(app.Store.Posts, app.Store.Hashtags, logger, app.Metrics)

	registry, err := functions.NewRegistry(functions.DefaultRoles(), limiter, logger, app.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize function registry: %w", err)
	}
	if err := functions.RegisterBuiltins(registry, accountService, postService); err != nil {
		return fmt.Errorf("failed to register functions: %w", err)
	}
	logger.Info("Registered functions", "functions", registry.Names())

	resolver, err := session.NewResolver(cfg.Secrets.BootstrapSecret, cfg.Secrets.AdminSecret,
		&app.privateKey.PublicKey, app.Store.Tokens, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session resolver: %w", err)
	}

	renderer, err := render.New(cfg.Site)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	route := routes.NewRoute(registry, resolver, app.Cache, renderer, app.Store.DB,
		structValidator.New(), logger, cfg.Cache.TTL)
	if route.Proxies, err = helper.ParseTrustedProxies(cfg.TrustedProxies); err != nil {
		return err
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)

	tracedMetricsHandler := otelhttp.NewHandler(app.Metrics.Handler(), routes.MetricsRouteAPI)

	if err := app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP); err != nil {
		return fmt.Errorf("failed to add metrics route: %w", err)
	}
	if err := route.AddRoutes(app.Server); err != nil {
		return err
	}

	// outermost last: tracing, logging, metrics, then the global limiter
	app.Server.Use(middleware.RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimiting.RequestsPerSecond), cfg.RateLimiting.Burst)))
	app.Server.Use(middleware.RequestMetrics(app.Metrics))
	app.Server.Use(middleware.RequestLogger(logger))
	app.Server.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, cfg.ServiceName)
	})

	return nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer app.close()

	app.Metrics.SetCurrentTimeGauge(metrics.ServiceStartTime)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.Server.ListenAndServe(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		return app.Server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (app *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			app.Logger.Warn("Failed to close page cache", "error", err)
		}
	}
	if app.Store != nil {
		if err := app.Store.Close(ctx); err != nil {
			app.Logger.Warn("Failed to disconnect database", "error", err)
		}
	}
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := pkgmetrics.NewMetrics(app.Config.ServiceName)
	metrics.Register(appMetrics)
	return appMetrics
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %w", err)
	}

	app.privateKey = privateKey
	return nil
}
