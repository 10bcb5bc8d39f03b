package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/config"
	"github.com/jmkang/pepper-shop/internal/events"
)

func main() {
	replay := flag.Bool("replay", false, "replay dead-lettered notifications back onto the main topic")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *replay {
		processor, err := events.NewDLQProcessor(cfg.KafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create DLQ processor")
		}
		defer processor.Close()

		go func() {
			logger.Info("Replaying notification DLQ")
			if err := processor.Replay(ctx); err != nil {
				logger.WithError(err).Error("DLQ replay error")
			}
		}()
	} else {
		consumerConfig := sarama.NewConfig()
		consumerConfig.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
		consumerConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
		consumerConfig.Version = sarama.V2_6_0_0

		consumer, err := sarama.NewConsumerGroup(strings.Split(cfg.KafkaBrokers, ","), "notification-dlq-monitor", consumerConfig)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create DLQ consumer")
		}
		defer consumer.Close()

		handler := &dlqHandler{logger: logger}

		go func() {
			for {
				if err := consumer.Consume(ctx, []string{events.NotificationDLQTopic}, handler); err != nil {
					logger.WithError(err).Error("Error consuming from DLQ")
					return
				}
			}
		}()

		logger.WithField("topic", events.NotificationDLQTopic).Info("DLQ monitor started")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down DLQ monitor...")
}

type dlqHandler struct {
	logger *logrus.Logger
}

func (h *dlqHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *dlqHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *dlqHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var metadata events.MessageMetadata
		for _, header := range message.Headers {
			if string(header.Key) == "metadata" {
				json.Unmarshal(header.Value, &metadata)
			}
		}

		h.logger.WithFields(logrus.Fields{
			"topic":       message.Topic,
			"partition":   message.Partition,
			"offset":      message.Offset,
			"key":         string(message.Key),
			"error":       metadata.ErrorMessage,
			"retry_count": metadata.RetryCount,
		}).Warn("Dead-lettered notification detected")

		var event events.NotificationRequested
		if err := json.Unmarshal(message.Value, &event); err == nil {
			h.logger.WithFields(logrus.Fields{
				"order_number": event.OrderNumber,
				"phone_number": event.PhoneNumber,
			}).Info("Dead-lettered notification details")
		}

		fmt.Printf("\n=== DLQ Notification ===\n")
		fmt.Printf("Time: %s\n", time.Now().Format(time.RFC3339))
		fmt.Printf("Order: %s\n", string(message.Key))
		fmt.Printf("Error: %s\n", metadata.ErrorMessage)
		fmt.Printf("========================\n\n")

		session.MarkMessage(message, "")
	}
	return nil
}
