package repositories

import (
	"context"

	"github.com/a-boudoun/matcha-server/internal/models"
	"gorm.io/gorm"
)

// PostgresVisitRepository implements services.VisitStore for PostgreSQL
type PostgresVisitRepository struct {
	db *gorm.DB
}

// NewPostgresVisitRepository creates a new PostgresVisitRepository
func NewPostgresVisitRepository(db *gorm.DB) *PostgresVisitRepository {
	return &PostgresVisitRepository{db: db}
}

// Insert records a profile view
func (r *PostgresVisitRepository) Insert(ctx context.Context, visitorID, visitedID uint) error {
	return r.db.WithContext(ctx).Create(&models.Visit{
		VisitorID: visitorID,
		VisitedID: visitedID,
	}).Error
}

// ListVisitsReceived returns who visited the user, oldest first
func (r *PostgresVisitRepository) ListVisitsReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Table("visits AS v").
		Select("v.id, v.visitor_id AS sender_id, p.first_name || ' ' || p.last_name AS sender_name, p.profile_picture, v.created_at").
		Joins("JOIN profiles p ON p.id = v.visitor_id").
		Where("v.visited_id = ?", userID).
		Order("v.created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&entries).Error
	return entries, err
}
