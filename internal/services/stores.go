package services

import (
	"context"

	"github.com/a-boudoun/matcha-server/internal/models"
)

// ProfileStore is the profile collaborator contract. Profiles are owned
// by profile management; the core reads them and mutates only the fame
// rating and presence fields.
type ProfileStore interface {
	// GetByID returns the profile with its interest tags, or ErrNotFound.
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// AdjustFame atomically applies fame_rating = clamp(fame_rating+delta, 1, 100).
	AdjustFame(ctx context.Context, id uint, delta int) error
	SetOnline(ctx context.Context, id uint, online bool) error
}

// RelationshipStore persists the directed swipe edges.
type RelationshipStore interface {
	// Find returns the initiator->receiver row, or nil when none exists.
	Find(ctx context.Context, initiatorID, receiverID uint) (*models.Relationship, error)
	// HasAnyFrom reports whether any row initiator->receiver exists,
	// regardless of status.
	HasAnyFrom(ctx context.Context, initiatorID, receiverID uint) (bool, error)
	// IsMatch reports whether a MATCH exists in either direction.
	IsMatch(ctx context.Context, a, b uint) (bool, error)
	Insert(ctx context.Context, rel *models.Relationship) error
	// UpsertLike inserts LIKED(initiator->receiver), overwriting a prior
	// DISLIKED row for the same ordered pair.
	UpsertLike(ctx context.Context, initiatorID, receiverID uint) error
	// PromoteToMatch sets every row between the pair to MATCH.
	PromoteToMatch(ctx context.Context, a, b uint) error
	// DeleteLike removes the LIKED(initiator->receiver) row.
	DeleteLike(ctx context.Context, initiatorID, receiverID uint) error
	// DeleteMatch removes the MATCH rows in both directions.
	DeleteMatch(ctx context.Context, a, b uint) error
	ListMatches(ctx context.Context, userID uint, page, limit int) ([]models.MatchSummary, error)
	ListLikesReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error)
}

// BlockStore persists block and report edges.
type BlockStore interface {
	// ExistsBetween reports whether a block exists in either direction.
	ExistsBetween(ctx context.Context, a, b uint) (bool, error)
	Insert(ctx context.Context, blockerID, blockedID uint) error
	ReportExists(ctx context.Context, reporterID, reportedID uint) (bool, error)
	InsertReport(ctx context.Context, reporterID, reportedID uint) error
}

// VisitStore persists profile-view events.
type VisitStore interface {
	Insert(ctx context.Context, visitorID, visitedID uint) error
	ListVisitsReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error)
}

// NotificationStore is the persisted-notification collaborator.
type NotificationStore interface {
	Create(ctx context.Context, senderID, receiverID uint, message string) (string, error)
}

// Stores bundles the relational collaborators behind one unit of work.
// Atomic runs fn against transaction-scoped stores; every state-machine
// transition executes its precondition check and mutation through it so
// concurrent attempts on the same ordered pair cannot both pass.
type Stores interface {
	Profiles() ProfileStore
	Relationships() RelationshipStore
	Blocks() BlockStore
	Visits() VisitStore
	Atomic(ctx context.Context, fn func(tx Stores) error) error
}

// EventPublisher delivers live events to online users. Pushing to an
// offline user is a silent no-op; delivery is fire-and-forget and never
// blocks or fails the calling transition.
type EventPublisher interface {
	IsOnline(userID uint) bool
	// Push returns whether the event was handed to a live connection.
	Push(userID uint, event string, payload any) bool
}
