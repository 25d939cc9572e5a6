package kafka

import (
	"context"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
)

// EventPublisher implements the scoring service's publishing contract on top
// of the Kafka producer.
type EventPublisher struct {
	producer *Producer
	source   string
	logger   logging.Logger
}

func NewEventPublisher(producer *Producer, source string, log logging.Logger) *EventPublisher {
	if source == "" {
		source = "brandguard"
	}
	return &EventPublisher{producer: producer, source: source, logger: log}
}

// PublishScored emits a listing.scored event keyed by listing ID.
func (p *EventPublisher) PublishScored(ctx context.Context, result *listing.ScoreResult) error {
	env, err := NewEventEnvelope(TopicListingScored, p.source, ListingScoredPayload{
		ListingID: result.ListingID,
		Result:    *result,
	})
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(TopicListingScored)
	if err != nil {
		return err
	}
	msg.Key = []byte(result.ListingID)
	return p.producer.Publish(ctx, msg)
}

// PublishGraphUpdated emits a graph.updated event keyed by brand, so every
// replica can drop its cached context for that brand.
func (p *EventPublisher) PublishGraphUpdated(ctx context.Context, brandName string) error {
	env, err := NewEventEnvelope(TopicGraphUpdated, p.source, GraphUpdatedPayload{
		Brand:     brandName,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(TopicGraphUpdated)
	if err != nil {
		return err
	}
	msg.Key = []byte(brandName)
	return p.producer.Publish(ctx, msg)
}

// PublishSubmitted queues a listing for asynchronous analysis.
func (p *EventPublisher) PublishSubmitted(ctx context.Context, input *listing.Input) error {
	env, err := NewEventEnvelope(TopicListingSubmitted, p.source, ListingSubmittedPayload{
		Listing:     *input,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(TopicListingSubmitted)
	if err != nil {
		return err
	}
	msg.Key = []byte(input.ID)
	return p.producer.Publish(ctx, msg)
}

//Personal.AI order the ending
