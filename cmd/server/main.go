package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/example/quickcart/internal/config"
	"github.com/example/quickcart/internal/database"
	"github.com/example/quickcart/internal/handlers"
	"github.com/example/quickcart/internal/logging"
	"github.com/example/quickcart/internal/notify"
	"github.com/example/quickcart/internal/routes"
	"github.com/example/quickcart/internal/services"
)

func main() {
	cfg := config.Load()

	logr, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logr.Sync()

	db, err := database.Connect(cfg.DatabaseURL, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := notify.NewHub(logr)
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, "", logr)

	// With Redis configured the local hub is fed only through the relay.
	var publisher notify.Publisher = notify.Fanout{hub, telegram}
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logr.Fatal("failed to reach redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		publisher = notify.Fanout{notify.NewRedisPublisher(rdb, cfg.RedisChannel), telegram}

		relay := notify.NewRelay(rdb, cfg.RedisChannel, hub, logr)
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logr.Error("event relay stopped", zap.Error(err))
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      "QuickCart Backend",
		ErrorHandler: handlers.ErrorHandler(logr),
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, routes.Deps{
		DB:        db,
		Config:    cfg,
		Publisher: publisher,
		Geocoder:  services.NewGeocoder(cfg.GeocoderBaseURL, cfg.ServiceableCity),
		Log:       logr,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	realtime := &http.Server{
		Addr:              ":" + cfg.RealtimePort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("realtime server listening", zap.String("port", cfg.RealtimePort))
		if err := realtime.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("realtime server failed", zap.Error(err))
		}
	}()

	go func() {
		logr.Info("api server listening", zap.String("port", cfg.AppPort))
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logr.Fatal("fiber.Listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logr.Error("api shutdown", zap.Error(err))
	}
	if err := realtime.Shutdown(shutdownCtx); err != nil {
		logr.Error("realtime shutdown", zap.Error(err))
	}
	hub.Close()
	telegram.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logr.Info("server exited")
}
