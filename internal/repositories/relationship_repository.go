package repositories

import (
	"context"
	"errors"

	"github.com/a-boudoun/matcha-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresRelationshipRepository implements services.RelationshipStore
// for PostgreSQL
type PostgresRelationshipRepository struct {
	db *gorm.DB
}

// NewPostgresRelationshipRepository creates a new PostgresRelationshipRepository
func NewPostgresRelationshipRepository(db *gorm.DB) *PostgresRelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

// Find returns the initiator->receiver row, or nil when none exists
func (r *PostgresRelationshipRepository) Find(ctx context.Context, initiatorID, receiverID uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.db.WithContext(ctx).
		Where("initiator_id = ? AND receiver_id = ?", initiatorID, receiverID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// HasAnyFrom reports whether any row initiator->receiver exists
func (r *PostgresRelationshipRepository) HasAnyFrom(ctx context.Context, initiatorID, receiverID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Relationship{}).
		Where("initiator_id = ? AND receiver_id = ?", initiatorID, receiverID).
		Count(&count).Error
	return count > 0, err
}

// IsMatch reports whether a MATCH exists between the pair in either direction
func (r *PostgresRelationshipRepository) IsMatch(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Relationship{}).
		Where("((initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)) AND status = ?",
			a, b, b, a, models.StatusMatch).
		Count(&count).Error
	return count > 0, err
}

// Insert creates a new relationship row
func (r *PostgresRelationshipRepository) Insert(ctx context.Context, rel *models.Relationship) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

// UpsertLike inserts LIKED(initiator->receiver), overwriting a prior
// DISLIKED row for the same ordered pair
func (r *PostgresRelationshipRepository) UpsertLike(ctx context.Context, initiatorID, receiverID uint) error {
	rel := models.Relationship{
		InitiatorID: initiatorID,
		ReceiverID:  receiverID,
		Status:      models.StatusLiked,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "initiator_id"}, {Name: "receiver_id"}},
		DoUpdates: clause.Assignments(map[string]any{"status": models.StatusLiked}),
	}).Create(&rel).Error
}

// PromoteToMatch sets every row between the pair to MATCH
func (r *PostgresRelationshipRepository) PromoteToMatch(ctx context.Context, a, b uint) error {
	return r.db.WithContext(ctx).Model(&models.Relationship{}).
		Where("(initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)", a, b, b, a).
		Update("status", models.StatusMatch).Error
}

// DeleteLike removes the LIKED(initiator->receiver) row
func (r *PostgresRelationshipRepository) DeleteLike(ctx context.Context, initiatorID, receiverID uint) error {
	return r.db.WithContext(ctx).
		Where("initiator_id = ? AND receiver_id = ? AND status = ?", initiatorID, receiverID, models.StatusLiked).
		Delete(&models.Relationship{}).Error
}

// DeleteMatch removes the MATCH rows between the pair in both directions
func (r *PostgresRelationshipRepository) DeleteMatch(ctx context.Context, a, b uint) error {
	return r.db.WithContext(ctx).
		Where("((initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)) AND status = ?",
			a, b, b, a, models.StatusMatch).
		Delete(&models.Relationship{}).Error
}

// ListMatches returns the profiles matched with the user, paginated
func (r *PostgresRelationshipRepository) ListMatches(ctx context.Context, userID uint, page, limit int) ([]models.MatchSummary, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var matches []models.MatchSummary
	err := r.db.WithContext(ctx).
		Table("relationships AS l").
		Select("DISTINCT p.id, p.first_name, p.last_name, p.profile_picture, p.age, p.fame_rating, p.gender").
		Joins("JOIN profiles p ON (p.id = l.initiator_id AND l.receiver_id = ?) OR (p.id = l.receiver_id AND l.initiator_id = ?)", userID, userID).
		Where("l.status = ?", models.StatusMatch).
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&matches).Error
	return matches, err
}

// ListLikesReceived returns who liked the user, oldest first
func (r *PostgresRelationshipRepository) ListLikesReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Table("relationships AS l").
		Select("l.id, l.initiator_id AS sender_id, p.first_name || ' ' || p.last_name AS sender_name, p.profile_picture, l.created_at").
		Joins("JOIN profiles p ON p.id = l.initiator_id").
		Where("l.receiver_id = ? AND l.status IN ?", userID, []string{models.StatusLiked, models.StatusMatch}).
		Order("l.created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&entries).Error
	return entries, err
}
