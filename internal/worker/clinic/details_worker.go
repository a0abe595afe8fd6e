package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond

	// providerPause throttles detail fetches so a burst of discovered places
	// does not hammer the provider quota.
	providerPause = 50 * time.Millisecond
)

// DetailsWorker consumes clinic-details events and enriches stored clinics
// with contact and rating data from the places provider.
type DetailsWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	placesRepo   repository.PlacesRepository
	clinicRepo   repository.ClinicRepository
	consumerName string
	maxRetries   int
}

// NewDetailsWorker creates a new DetailsWorker.
func NewDetailsWorker(
	streamRepo repository.StreamRepository,
	placesRepo repository.PlacesRepository,
	clinicRepo repository.ClinicRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *DetailsWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &DetailsWorker{
		BaseWorker:   worker.NewBaseWorker("clinic-details", consumerGroup, logger),
		streamRepo:   streamRepo,
		placesRepo:   placesRepo,
		clinicRepo:   clinicRepo,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop.
func (w *DetailsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting DetailsWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamClinicDetails, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and handles one batch of messages. Returns how many
// messages were consumed.
func (w *DetailsWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamClinicDetails,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK a broken message so it does not stick in the stream
			_ = w.streamRepo.AckMessage(ctx, domain.StreamClinicDetails, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.enrichClinic(ctx, event.PlaceID); err != nil {
			logger.Warn("Failed to enrich clinic, leaving message pending",
				zap.String("message_id", msg.ID),
				zap.String("place_id", event.PlaceID),
				zap.Error(err))
			continue
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamClinicDetails, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Warn("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}

		time.Sleep(providerPause)
	}

	return len(messages), nil
}

// enrichClinic fetches provider details and writes contact and rating back.
func (w *DetailsWorker) enrichClinic(ctx context.Context, placeID string) error {
	details, err := w.placesRepo.GetPlaceDetails(ctx, placeID)
	if err != nil {
		return fmt.Errorf("failed to fetch place details: %w", err)
	}

	var contact *string
	if details.PhoneNumber != "" {
		phone := details.PhoneNumber
		contact = &phone
	} else if details.WebsiteURI != "" {
		site := details.WebsiteURI
		contact = &site
	}

	if err := w.clinicRepo.UpdateDetails(ctx, placeID, contact, details.Rating); err != nil {
		return fmt.Errorf("failed to update clinic details: %w", err)
	}

	w.Logger().Debug("Clinic enriched",
		zap.String("place_id", placeID),
		zap.Float64("rating", details.Rating))

	return nil
}

func (w *DetailsWorker) parseMessage(msg domain.StreamMessage) (*domain.ClinicDetailsEvent, error) {
	var event domain.ClinicDetailsEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.PlaceID == "" {
		return nil, fmt.Errorf("event has empty place id")
	}
	return &event, nil
}
