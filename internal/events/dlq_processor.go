package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

// DLQProcessor replays dead-lettered notifications back onto the main
// topic, e.g. after a gateway outage is over.
type DLQProcessor struct {
	consumer    sarama.ConsumerGroup
	producer    sarama.SyncProducer
	logger      *logrus.Logger
	replayTopic string
}

func NewDLQProcessor(brokers string, logger *logrus.Logger) (*DLQProcessor, error) {
	consumerConfig := sarama.NewConfig()
	consumerConfig.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	consumerConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	consumerConfig.Version = sarama.V2_6_0_0

	consumer, err := sarama.NewConsumerGroup(strings.Split(brokers, ","), "notification-dlq-replay", consumerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create DLQ consumer: %w", err)
	}

	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForAll
	producerConfig.Producer.Retry.Max = 5
	producerConfig.Producer.Return.Successes = true
	producerConfig.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), producerConfig)
	if err != nil {
		consumer.Close()
		return nil, fmt.Errorf("failed to create replay producer: %w", err)
	}

	return &DLQProcessor{
		consumer:    consumer,
		producer:    producer,
		logger:      logger,
		replayTopic: NotificationRequestedTopic,
	}, nil
}

func (p *DLQProcessor) Replay(ctx context.Context) error {
	handler := &dlqReplayHandler{
		producer:    p.producer,
		logger:      p.logger,
		replayTopic: p.replayTopic,
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := p.consumer.Consume(ctx, []string{NotificationDLQTopic}, handler); err != nil {
				p.logger.WithError(err).Error("Error consuming from DLQ")
				return err
			}
		}
	}
}

func (p *DLQProcessor) Close() error {
	if err := p.producer.Close(); err != nil {
		p.logger.WithError(err).Error("Failed to close replay producer")
	}
	return p.consumer.Close()
}

type dlqReplayHandler struct {
	producer    sarama.SyncProducer
	logger      *logrus.Logger
	replayTopic string
}

func (h *dlqReplayHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *dlqReplayHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *dlqReplayHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		replay := &sarama.ProducerMessage{
			Topic: h.replayTopic,
			Key:   sarama.ByteEncoder(message.Key),
			Value: sarama.ByteEncoder(message.Value),
		}

		partition, offset, err := h.producer.SendMessage(replay)
		if err != nil {
			h.logger.WithError(err).WithField("key", string(message.Key)).
				Error("Failed to replay DLQ message")
			continue
		}

		h.logger.WithFields(logrus.Fields{
			"key":       string(message.Key),
			"topic":     h.replayTopic,
			"partition": partition,
			"offset":    offset,
		}).Info("DLQ message replayed")

		session.MarkMessage(message, "")
	}
	return nil
}
