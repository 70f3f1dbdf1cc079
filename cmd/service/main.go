package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "github.com/Boring-Software-Nation/figaro-contract/internal/app"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/action_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/contract_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/courier_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/delivery_cancel_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/delivery_confirm_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/details_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/funds_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/healthcheck_head"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/locations_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/ping_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/status_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/token_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/config"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/dotenv"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/grpcclient"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/kafka"
	metrics_system "github.com/Boring-Software-Nation/figaro-contract/internal/pkg/metrics"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/caller"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/graceful_shutdown"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/metrics"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/rate_limiter"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/timeout"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/postgres"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger/zap_adapter"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter("contract-service", os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting figaro-contract application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdownCtx и ongoingCtx намеренно не наследуются от ctx, который отменяется по сигналу
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.Ledger)
	if err != nil {
		return fmt.Errorf("gRPC client: %w", err)
	}
	defer func() {
		err := conn.Close()
		if err != nil {
			runLog.Error("failed to close gRPC connection",
				logger.NewField("error", err),
			)
		}
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, conn, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx не отменяется по SIGTERM, только после server.Shutdown(),
	// чтобы in-flight запросы успели завершиться.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, businessApp, pool, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал при выключенном pprof, кейс не сработает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()
	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	pool *pgxpool.Pool,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(
		log,
		cfg.Server.RateLimiterQPS,
		token_bucket.NewTokenBucket(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst)),
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool.Ping)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/contracts/{id}/status", status_get.New(log, app.ServiceEscrow)).Methods("GET")
	router.Handle("/contracts/{id}/courier", courier_get.New(log, app.ServiceEscrow)).Methods("GET")
	router.Handle("/contracts/{id}/funds", funds_get.New(log, app.ServiceEscrow)).Methods("GET")
	router.Handle("/contracts/{id}/locations", locations_get.New(log, app.ServiceEscrow)).Methods("GET")
	router.Handle("/contracts/{id}/token", token_get.New(log, app.ServiceEscrow)).Methods("GET")

	actions := router.Methods("POST").Subrouter()
	actions.Use(caller.Middleware(cfg.Escrow.Bech32Prefix))

	actions.Handle("/contracts", contract_post.New(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/pay", action_post.NewPay(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/accept", action_post.NewAccept(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/deposit", action_post.NewDeposit(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/details", details_post.New(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/issue", action_post.NewIssue(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/confirm", delivery_confirm_post.New(log, app.ServiceEscrow))
	actions.Handle("/contracts/{id}/cancel", delivery_cancel_post.New(log, app.ServiceEscrow))

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
