package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"slmarkets/internal/catalog"
	"slmarkets/internal/config"
	"slmarkets/internal/infrastructure/logger"
	"slmarkets/internal/infrastructure/mysql"
	"slmarkets/internal/infrastructure/rabbitmq"
	"slmarkets/internal/infrastructure/redis"
	"slmarkets/internal/notification"
	"slmarkets/internal/order"
	"slmarkets/internal/payment"
	"slmarkets/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("redis connected")

	mq, err := rabbitmq.New(cfg.RabbitMQ)
	if err != nil {
		zapLogger.Fatal("connecting to rabbitmq", zap.Error(err))
	}
	defer mq.Close()
	if err := mq.SetupQueues(); err != nil {
		zapLogger.Fatal("declaring queues", zap.Error(err))
	}
	zapLogger.Info("rabbitmq connected")

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	mailer := notification.NewHTTPMailer(cfg.Mail)
	consumer := notification.NewConsumer(mq, cfg.RabbitMQ, mailer, zapLogger)
	if err := consumer.Start(consumerCtx); err != nil {
		zapLogger.Fatal("starting notification consumer", zap.Error(err))
	}

	notifier := notification.NewPublisher(mq, cfg.RabbitMQ, cfg.Mail)

	orderCtrl := order.NewModule(db, notifier, cfg, zapLogger)
	paymentCtrl := payment.NewModule(db, cfg, zapLogger)
	catalogCtrl := catalog.NewModule(db, redisClient, cfg.Redis.CacheTTL, zapLogger)

	router := server.NewRouter(orderCtrl, paymentCtrl, catalogCtrl)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}
	stopConsumer()

	zapLogger.Info("server stopped gracefully")
}
