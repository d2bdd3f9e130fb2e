package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asquebay/flower-shop-service/internal/config"
	"github.com/asquebay/flower-shop-service/internal/lib/logger"
	"github.com/asquebay/flower-shop-service/internal/repository/postgres"
	httptransport "github.com/asquebay/flower-shop-service/internal/transport/http"
	"github.com/asquebay/flower-shop-service/internal/transport/kafka"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. Инициализация конфигурации
	cfg := config.MustLoad(*configPath)

	// 2. Инициализация логгера
	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("starting flower-shop-service api", slog.String("log_level", cfg.Logger.Level))

	// 3. Инициализация репозиториев (БД)
	initCtx := context.Background()
	dbpool, err := postgres.New(initCtx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()
	log.Info("successfully connected to postgres")

	flowerRepo := postgres.NewFlowerRepository(dbpool)
	orderRepo := postgres.NewOrderRepository(dbpool)

	// 4. Инициализация продюсера событий заказов
	var events httptransport.EventPublisher
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		events = producer
		log.Info("kafka producer initialized", slog.String("topic", cfg.Kafka.Topic))
	} else {
		// без брокеров сервис работает, просто не публикует события
		log.Warn("kafka brokers are not configured, order events disabled")
	}

	// 5. Инициализация и запуск HTTP-сервера
	handler := httptransport.NewHandler(flowerRepo, orderRepo, events, log)
	httpServer := httptransport.NewServer(cfg.HTTPServer.Port, handler, cfg.HTTPServer.Timeout)
	log.Info("starting http server", slog.String("port", cfg.HTTPServer.Port))

	go func() {
		if err := httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed to start", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// 6. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down application")

	// создаем контекст с таймаутом для шатдауна сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("error closing kafka producer", slog.String("error", err.Error()))
		}
	}

	log.Info("application stopped")
}
