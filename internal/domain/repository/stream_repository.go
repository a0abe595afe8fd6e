package repository

import (
	"context"

	"github.com/clinic-directory/internal/domain"
)

// StreamRepository wraps Redis streams for the clinic-details enrichment queue.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group, tolerating BUSYGROUP.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages without blocking forever.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream JSON-encodes data and appends it to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
