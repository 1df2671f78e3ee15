package repositories

import (
	"context"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/internal/services"
	"gorm.io/gorm"
)

// PostgresCandidateRepository implements services.CandidateStore. It
// translates the structured candidate predicates into one query; no SQL
// is composed from raw user input.
type PostgresCandidateRepository struct {
	db *gorm.DB
}

// NewPostgresCandidateRepository creates a new PostgresCandidateRepository
func NewPostgresCandidateRepository(db *gorm.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// FindEligible returns profiles passing the exclusion rules and column
// predicates for the requester. Always excluded: the requester itself,
// profiles blocked by or blocking the requester, profiles the requester
// already swiped, matched pairs, and incomplete or unverified profiles.
func (r *PostgresCandidateRepository) FindEligible(ctx context.Context, requesterID uint, p services.CandidatePredicates) ([]models.Profile, error) {
	q := r.db.WithContext(ctx).Model(&models.Profile{}).
		Preload("Interests").
		Where("profiles.id <> ?", requesterID).
		Where("profiles.profile_completed = ?", true).
		Where("profiles.email_verified = ?", true).
		Where(`NOT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = ? AND blocked_id = profiles.id)
			OR (blocker_id = profiles.id AND blocked_id = ?))`, requesterID, requesterID).
		Where(`NOT EXISTS (
			SELECT 1 FROM relationships
			WHERE (initiator_id = ? AND receiver_id = profiles.id)
			OR (initiator_id = profiles.id AND receiver_id = ? AND status = ?))`,
			requesterID, requesterID, models.StatusMatch)

	if p.MinAge > 0 || p.MaxAge > 0 {
		minAge, maxAge := p.MinAge, p.MaxAge
		if minAge == 0 {
			minAge = 18
		}
		if maxAge == 0 {
			maxAge = 100
		}
		q = q.Where("profiles.age BETWEEN ? AND ?", minAge, maxAge)
	}

	if p.MinFameRating > 0 || p.MaxFameRating > 0 {
		minFame, maxFame := p.MinFameRating, p.MaxFameRating
		if minFame == 0 {
			minFame = models.FameRatingMin
		}
		if maxFame == 0 {
			maxFame = models.FameRatingMax
		}
		q = q.Where("profiles.fame_rating BETWEEN ? AND ?", minFame, maxFame)
	}

	if len(p.Interests) > 0 {
		q = q.Where(`(
			SELECT COUNT(DISTINCT it.tag) FROM profile_interests pi
			JOIN interest_tags it ON it.id = pi.interest_tag_id
			WHERE pi.profile_id = profiles.id AND it.tag IN ?) = ?`,
			p.Interests, len(p.Interests))
	}

	var profiles []models.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
