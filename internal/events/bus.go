package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/devlink-kr/idea-insight/internal/store"
)

const (
	// TopicPredictionRecorded carries append-only prediction history rows.
	TopicPredictionRecorded = "prediction.recorded"
	// TopicRecommendationClicked carries recommendation impression clicks.
	TopicRecommendationClicked = "recommendation.clicked"
)

// Bus is the in-process asynchronous task boundary between the scoring
// response path and the append-only history writes. Publishing never blocks
// on the store, and a publish failure is logged, not surfaced.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus creates an in-process publish/subscribe bus.
func NewBus(logger *slog.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewSlogLogger(logger),
	)

	return &Bus{pubSub: pubSub}
}

// PublishPrediction enqueues one prediction history row for the recorder.
func (b *Bus) PublishPrediction(rec store.PredictionRecord) {
	b.publish(TopicPredictionRecorded, rec)
}

// PublishClick enqueues one click event for the recorder.
func (b *Bus) PublishClick(ev store.ClickEvent) {
	b.publish(TopicRecommendationClicked, ev)
}

func (b *Bus) publish(topic string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode event payload", "topic", topic, "error", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		slog.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}

// Subscribe exposes the underlying subscription for the recorder.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Close shuts the bus down, draining buffered messages.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
