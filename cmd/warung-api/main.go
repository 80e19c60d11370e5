package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcmexdev/warung-orders/internal/config"
	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/infra/events"
	"github.com/jcmexdev/warung-orders/internal/infra/events/rabbitmq"
	"github.com/jcmexdev/warung-orders/internal/infra/grpcx"
	"github.com/jcmexdev/warung-orders/internal/infra/httpx"
	"github.com/jcmexdev/warung-orders/internal/infra/store/memory"
	"github.com/jcmexdev/warung-orders/internal/placement"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog/sqlite"
	"github.com/jcmexdev/warung-orders/internal/pkg/cache"
	"github.com/jcmexdev/warung-orders/internal/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("warung-api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	opts := []placement.Option{placement.WithPublisher(events.Noop{})}
	var handlerOpts []httpx.HandlerOption

	if cfg.SQLitePath != "" {
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer repo.Close()
		opts = append(opts, placement.WithLogRepository(repo))
		handlerOpts = append(handlerOpts, httpx.WithPlacementHistory(repo))
		slog.Info("placement log enabled", "path", cfg.SQLitePath)
	}

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		defer redisCache.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			slog.Warn("redis not reachable, idempotency replay will degrade", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		opts = append(opts, placement.WithIdempotencyCache(redisCache, cfg.IdempotencyTTL))
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, placement.WithPublisher(publisher))
		slog.Info("order events enabled", "exchange", cfg.RabbitMQExchange)
	}

	var store ports.Store = memory.NewStore()
	placer := placement.NewService(store, checkout.NewCalculator(), opts...)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(httpx.NewHandler(store, placer, handlerOpts...), cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}
	grpcServer := grpcx.NewServer()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("warung api running", "http_addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("grpc health running", "grpc_addr", cfg.GRPCAddr)
		return grpcServer.Serve(grpcLis)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		grpcServer.MarkNotServing()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return errors.Join(
			httpServer.Shutdown(shutdownCtx),
			grpcServer.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}
