package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

func CreateKafkaProducer(config *config.Config) (*kafka.Conn, error) {
	return kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
}

// Publisher writes domain events to a single topic partition.
type Publisher struct {
	conn *kafka.Conn
}

func CreatePublisher(conn *kafka.Conn) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err = p.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	_, err = p.conn.WriteMessages(kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	return err
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	log.Ctx(ctx).Debug().Str("event_type", msg.EventType).Str("key", key).Msg("event dropped, no broker configured")
	return nil
}
