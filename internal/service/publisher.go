package service

import (
	"context"

	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/rs/zerolog/log"
)

// publish makes a single attempt and only logs on failure.
func publish(ctx context.Context, publisher EventPublisher, key string, msg dto.KafkaMessage) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, key, msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EventPublisher").Str("event_type", msg.EventType).Msg("")
	}
}
