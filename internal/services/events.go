package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types published after a successful write.
const (
	EventUserRegistered = "user.registered"
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
	EventVoteAdded      = "vote.added"
	EventVoteRemoved    = "vote.removed"
)

// Event is the JSON body of a published domain event.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     uint      `json:"user_id"`
	PostID     uint      `json:"post_id,omitempty"`
}

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, messageID, eventType string, body interface{}) error
}

// eventEmitter publishes events on a best-effort basis. A nil publisher disables it.
type eventEmitter struct {
	publisher EventPublisher
	log       *zap.Logger
}

func (e eventEmitter) emit(ctx context.Context, eventType string, userID, postID uint) {
	if e.publisher == nil {
		return
	}
	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
		PostID:     postID,
	}
	if err := e.publisher.Publish(ctx, event.ID, event.Type, event); err != nil {
		e.log.Warn("failed to publish event",
			zap.String("type", eventType),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
