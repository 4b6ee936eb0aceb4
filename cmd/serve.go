package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/shenikar/emergency_dispatch_system/docs"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
	v1 "github.com/shenikar/emergency_dispatch_system/internal/handler/http/v1"
	"github.com/shenikar/emergency_dispatch_system/internal/metrics"
	"github.com/shenikar/emergency_dispatch_system/internal/repository"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/shenikar/emergency_dispatch_system/internal/transport/memory"
	"github.com/shenikar/emergency_dispatch_system/internal/transport/mqtt"
	redistransport "github.com/shenikar/emergency_dispatch_system/internal/transport/redis"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	"github.com/shenikar/emergency_dispatch_system/pkg/logger"
	"github.com/shenikar/emergency_dispatch_system/pkg/postgres"
	redisclient "github.com/shenikar/emergency_dispatch_system/pkg/redis"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dispatch API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			skipMigrations, err := cmd.Flags().GetBool("skip-migrations")
			if err != nil {
				return fmt.Errorf("failed to get skip-migrations flag: %w", err)
			}
			return runServe(cmd.Context(), skipMigrations)
		},
	}
	serveCmd.Flags().Bool("skip-migrations", false, "Do not apply migrations on startup")
	return serveCmd
}

func runServe(parent context.Context, skipMigrations bool) error {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	if parent == nil {
		parent = context.Background()
	}
	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Запуск миграций
	if !skipMigrations {
		log.Info("Running database migrations...")
		if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, postgres.MigrateUp); err != nil {
			return err
		}
		log.Info("Database migrations applied successfully")
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Redis нужен только для Redis-транспорта и вебхуков
	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	transport, closeTransport, err := newTransport(cfg, redisClient, log)
	if err != nil {
		return err
	}
	defer closeTransport()
	log.WithField("transport", cfg.Transport).Info("Event transport initialized")

	// Зеркалирование событий диспетчерской во внешний вебхук
	if cfg.WebhookURL != "" {
		transport = fanout.NewMultiTransport(transport, webhook.NewRedisWebhookPublisher(redisClient))
	}

	recorder, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	events := fanout.New(transport, log, fanout.Config{
		QueueSize:  cfg.FanoutQueueSize,
		MaxRetries: uint(cfg.FanoutMaxRetries),
		RetryBase:  cfg.FanoutRetryBase,
	}, recorder)

	// Инициализация репозиториев и сервисов
	dispatchRepo := repository.NewDispatchRepository(dbpool)
	dispatchService := service.NewDispatchService(service.NewOfficerRegistry(), dispatchRepo, events, log,
		service.WithMetrics(recorder))

	if err := dispatchService.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore dispatch state: %w", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(dispatchService, transport, log)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api, cfg.APIKeys)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return events.Run(gctx)
	})

	if cfg.WebhookURL != "" {
		worker := webhook.NewWebhookWorker(redisClient, log, webhook.Config{
			URL:        cfg.WebhookURL,
			Secret:     cfg.WebhookSecret,
			Timeout:    cfg.WebhookTimeout,
			MaxRetries: uint(cfg.WebhookMaxRetries),
			BaseDelay:  cfg.WebhookBaseDelay,
		})
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}

// newTransport выбирает шину событий по конфигурации
func newTransport(cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) (fanout.Transport, func(), error) {
	switch cfg.Transport {
	case config.TransportRedis:
		return redistransport.NewTransport(redisClient), func() {}, nil
	case config.TransportMQTT:
		t, err := mqtt.Connect(cfg.MQTTBroker, cfg.MQTTClientID, nil, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
		}
		return t, t.Close, nil
	default:
		broker := memory.NewBroker(log)
		return broker, func() {
			if err := broker.Close(); err != nil {
				log.WithError(err).Warn("Failed to close in-memory broker")
			}
		}, nil
	}
}
