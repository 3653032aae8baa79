package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/grantsy/licensegate/internal/auth"
	"github.com/grantsy/licensegate/internal/gate"
	"github.com/grantsy/licensegate/internal/httptools"
	"github.com/grantsy/licensegate/internal/infra/config"
	"github.com/grantsy/licensegate/internal/infra/db"
	"github.com/grantsy/licensegate/internal/infra/logger"
	"github.com/grantsy/licensegate/internal/infra/metrics"
	"github.com/grantsy/licensegate/internal/infra/server"
	"github.com/grantsy/licensegate/internal/notify"
	"github.com/grantsy/licensegate/internal/openapi"
	"github.com/grantsy/licensegate/internal/prefs"
	"github.com/grantsy/licensegate/internal/remote"
	"github.com/grantsy/licensegate/pkg/gracefulshutdown"
)

const healthcheckProbePath = "/healthz"

func main() {
	//
	// Infra
	//

	gracefulshutdown.SubscribeForShutdown()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Env)
	slog.Debug("starting licensegate", "config", *cfg)

	var metricsHandler http.Handler
	if cfg.Metrics.Enable {
		metricsHandler = metrics.Init(cfg.Metrics.GoMetrics)
	}

	ctx := context.Background()

	store, closeStore, err := prefs.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open preference store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	notifier, err := notify.New(cfg.Notifications)
	if err != nil {
		slog.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}

	policy, err := gate.ParseUnhandledPolicy(cfg.Gate.UnhandledStatus)
	if err != nil {
		slog.Error("invalid gate config", "error", err)
		os.Exit(1)
	}

	//
	// License check
	//

	g := gate.New(
		store,
		remote.NewClient(cfg.Gate.TimeoutDuration()),
		notifier,
		gate.WithUnhandledPolicy(policy),
		gate.WithSingleFlight(cfg.Gate.SingleFlight),
		gate.WithNotifyTimeout(cfg.Notifications.SubmitTimeoutDuration()),
		gate.WithCompletionHandler(gate.Enforce(gate.ExitProcess)),
	)
	call := g.Start(ctx, cfg.Gate.ServerURL)

	if !cfg.Admin.Enable {
		res, err := call.Wait(gracefulshutdown.GetServerBaseContext())
		if err != nil {
			slog.Warn("interrupted before the license check completed")
			closeStore()
			os.Exit(1)
		}
		slog.Info("license check passed", "outcome", res.Outcome, "reason", res.Reason)
		return
	}

	//
	// Routes
	//

	mux := http.NewServeMux()
	hideRouteMiddleware := httptools.Hidden(
		httptools.IsLocalNetworkReq,
		http.StatusNotFound,
	)
	if metricsHandler != nil {
		mux.Handle(
			"GET "+cfg.Metrics.Path,
			httptools.Wrap(metricsHandler, hideRouteMiddleware),
		)
	}

	healthMiddlewares := []httptools.Middleware{
		hideRouteMiddleware,
		gracefulshutdown.HealthCheckMiddleware,
	}
	if pinger, ok := store.(db.Pinger); ok {
		healthMiddlewares = append(healthMiddlewares, db.HealthCheckMiddleware(pinger))
	}
	mux.Handle("GET "+healthcheckProbePath, httptools.Wrap(nil, healthMiddlewares...))

	reflector := openapi.NewReflector()
	routes := []httptools.Route{
		gate.NewRouteStatus(g),
		openapi.NewRoute(reflector, hideRouteMiddleware),
	}
	for _, route := range routes {
		route.Register(mux, reflector)
	}

	//
	// Middlewares
	//

	// skip logging, auth and metrics for probes
	middlewares := []httptools.Middleware{
		httptools.Skip(logger.Middleware, healthcheckProbePath, cfg.Metrics.Path),
		logger.RecoveryMiddleware,
		httptools.Skip(
			auth.Middleware(cfg.Admin.APIKey),
			healthcheckProbePath,
			cfg.Metrics.Path,
		),
	}
	if cfg.Metrics.Enable {
		middlewares = append(
			middlewares,
			httptools.Skip(
				metrics.Middleware,
				healthcheckProbePath,
				cfg.Metrics.Path,
			),
		)
	}

	//
	// Start server
	//

	addr := fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
	srv := server.New(addr, httptools.Wrap(mux, middlewares...))
	go func() {
		slog.Info("starting admin server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	gracefulshutdown.WaitForShutdown(srv)
}
