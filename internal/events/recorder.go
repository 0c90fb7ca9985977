package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/devlink-kr/idea-insight/internal/store"
)

const writeTimeout = 5 * time.Second

// Recorder consumes the bus and appends rows to the store. Append failures
// are logged only; the event is acked either way since the response that
// triggered it has already been sent.
type Recorder struct {
	bus  *Bus
	repo *store.Repository
}

// NewRecorder creates a recorder over the given bus and repository.
func NewRecorder(bus *Bus, repo *store.Repository) *Recorder {
	return &Recorder{bus: bus, repo: repo}
}

// Run subscribes to both topics and processes messages until ctx is
// cancelled or the bus closes.
func (r *Recorder) Run(ctx context.Context) error {
	predictions, err := r.bus.Subscribe(ctx, TopicPredictionRecorded)
	if err != nil {
		return err
	}

	clicks, err := r.bus.Subscribe(ctx, TopicRecommendationClicked)
	if err != nil {
		return err
	}

	go r.consume(ctx, predictions, r.handlePrediction)
	go r.consume(ctx, clicks, r.handleClick)

	slog.Info("Event recorder started",
		"topics", []string{TopicPredictionRecorded, TopicRecommendationClicked})

	return nil
}

func (r *Recorder) consume(ctx context.Context, messages <-chan *message.Message, handle func(context.Context, *message.Message)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			handle(ctx, msg)
			msg.Ack()
		}
	}
}

func (r *Recorder) handlePrediction(ctx context.Context, msg *message.Message) {
	var rec store.PredictionRecord
	if err := json.Unmarshal(msg.Payload, &rec); err != nil {
		slog.Error("Failed to decode prediction event", "message_id", msg.UUID, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.repo.AppendPrediction(writeCtx, rec); err != nil {
		slog.Warn("Failed to append prediction history",
			"idea_id", rec.IdeaID,
			"developer_id", rec.DeveloperID,
			"error", err)
	}
}

func (r *Recorder) handleClick(ctx context.Context, msg *message.Message) {
	var ev store.ClickEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		slog.Error("Failed to decode click event", "message_id", msg.UUID, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.repo.AppendClickEvent(writeCtx, ev); err != nil {
		slog.Warn("Failed to append click event",
			"user_id", ev.UserID,
			"idea_id", ev.IdeaID,
			"error", err)
	}
}
