package services

import (
	"context"
	"time"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/pkg/metrics"
	"github.com/rs/zerolog"
)

// Live event types pushed over a user's connection.
const (
	EventNewMessage      = "new_message"
	EventNewNotification = "new_notification"
	EventNewMatch        = "new_match"
)

// Notifier persists notifications and pushes them to online receivers.
// Store and push failures are logged and swallowed: a failed notification
// must never roll back or fail the transition that produced it.
type Notifier struct {
	notifications NotificationStore
	profiles      ProfileStore
	publisher     EventPublisher
	logger        zerolog.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(notifications NotificationStore, profiles ProfileStore, publisher EventPublisher, logger zerolog.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		profiles:      profiles,
		publisher:     publisher,
		logger:        logger.With().Str("component", "notifier").Logger(),
	}
}

// Notify creates a notification row and, if the receiver holds a live
// connection, pushes it as a new_notification event.
func (n *Notifier) Notify(ctx context.Context, senderID, receiverID uint, message string) {
	id, err := n.notifications.Create(ctx, senderID, receiverID, message)
	if err != nil {
		n.logger.Error().Err(err).
			Uint("sender_id", senderID).
			Uint("receiver_id", receiverID).
			Msg("failed to persist notification")
		return
	}

	if !n.publisher.IsOnline(receiverID) {
		return
	}

	sender, err := n.profiles.GetByID(ctx, senderID)
	if err != nil {
		n.logger.Error().Err(err).Uint("sender_id", senderID).Msg("failed to load notification sender")
		return
	}

	delivered := n.publisher.Push(receiverID, EventNewNotification, models.NotificationView{
		ID:         id,
		SenderID:   senderID,
		SenderName: sender.FullName(),
		Message:    message,
		IsRead:     false,
		CreatedAt:  time.Now(),
	})
	metrics.EventPushed(EventNewNotification, delivered)
}

// PushMatch pushes a new_match event; the trigger carries no payload.
func (n *Notifier) PushMatch(userID uint) {
	delivered := n.publisher.Push(userID, EventNewMatch, map[string]any{})
	metrics.EventPushed(EventNewMatch, delivered)
}
