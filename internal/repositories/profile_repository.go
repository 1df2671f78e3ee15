package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"gorm.io/gorm"
)

// PostgresProfileRepository implements services.ProfileStore for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetByID retrieves a profile with its interest tags
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Preload("Interests").First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %d: %w", id, services.ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

// Exists reports whether a profile with the given ID exists
func (r *PostgresProfileRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AdjustFame applies a clamped fame-rating delta in a single UPDATE so
// concurrent adjustments on the same profile never lose a write.
func (r *PostgresProfileRepository) AdjustFame(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("fame_rating", gorm.Expr(
			"LEAST(?, GREATEST(?, fame_rating + ?))",
			models.FameRatingMax, models.FameRatingMin, delta,
		)).Error
}

// SetOnline updates the presence flag; going offline also stamps the
// last-connection time.
func (r *PostgresProfileRepository) SetOnline(ctx context.Context, id uint, online bool) error {
	updates := map[string]any{"is_active": online}
	if !online {
		updates["last_connection"] = time.Now()
	}
	return r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}
