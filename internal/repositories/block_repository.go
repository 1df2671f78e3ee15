package repositories

import (
	"context"

	"github.com/a-boudoun/matcha-server/internal/models"
	"gorm.io/gorm"
)

// PostgresBlockRepository implements services.BlockStore for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

// NewPostgresBlockRepository creates a new PostgresBlockRepository
func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// ExistsBetween reports whether a block exists in either direction
func (r *PostgresBlockRepository) ExistsBetween(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// Insert creates a block edge
func (r *PostgresBlockRepository) Insert(ctx context.Context, blockerID, blockedID uint) error {
	return r.db.WithContext(ctx).Create(&models.Block{
		BlockerID: blockerID,
		BlockedID: blockedID,
	}).Error
}

// ReportExists reports whether the reporter already reported the user
func (r *PostgresBlockRepository) ReportExists(ctx context.Context, reporterID, reportedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("reporter_id = ? AND reported_id = ?", reporterID, reportedID).
		Count(&count).Error
	return count > 0, err
}

// InsertReport records a fake-account report
func (r *PostgresBlockRepository) InsertReport(ctx context.Context, reporterID, reportedID uint) error {
	return r.db.WithContext(ctx).Create(&models.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
	}).Error
}
