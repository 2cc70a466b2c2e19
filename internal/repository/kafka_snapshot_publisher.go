package repository

import (
	"context"

	"LOBSim/internal/domain/models"
	"LOBSim/internal/domain/repository"
	pkgkafka "LOBSim/pkg/kafka"
)

// KafkaSnapshotPublisher implements SnapshotPublisher for Kafka. Messages
// are keyed by symbol so a hash balancer preserves per-symbol ordering.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSnapshotPublisher creates Kafka snapshot publisher.
func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) repository.SnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, s *models.Snapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Symbol), s)
}

func (p *KafkaSnapshotPublisher) PublishBatch(ctx context.Context, snaps []models.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(snaps))
	for i := range snaps {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(snaps[i].Symbol),
			Value: &snaps[i],
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSnapshotPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
