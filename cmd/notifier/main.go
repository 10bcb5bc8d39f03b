package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/circuitbreaker"
	"github.com/jmkang/pepper-shop/internal/config"
	"github.com/jmkang/pepper-shop/internal/events"
	"github.com/jmkang/pepper-shop/internal/notifier"
	"github.com/jmkang/pepper-shop/internal/sms"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg := config.Load()

	gateway := sms.NewClient(cfg.SMSBaseURL, cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber, logger)

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:        "sms-gateway",
		MaxFailures: 5,
		Timeout:     30 * time.Second,
		MaxRequests: 1,
	}, logger)

	dispatcher := notifier.NewDispatcher(gateway, breaker, logger)

	logger.WithField("brokers", cfg.KafkaBrokers).Info("Initializing Kafka consumer...")

	var consumer *events.KafkaConsumerWithRetry
	var err error

	// Kafka may still be starting when the worker comes up.
	for i := 0; i < 10; i++ {
		consumer, err = events.NewKafkaConsumerWithRetry(cfg.KafkaBrokers, "notifier-group", dispatcher, logger)
		if err == nil {
			logger.Info("Successfully connected to Kafka")
			break
		}
		logger.WithError(err).WithField("attempt", i+1).Warn("Failed to connect to Kafka, retrying...")
		time.Sleep(5 * time.Second)
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Kafka consumer after retries")
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Info("Starting notification consumer")
		if err := consumer.Start(ctx); err != nil {
			logger.WithError(err).Error("Kafka consumer error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notifier...")
	cancel()
}
