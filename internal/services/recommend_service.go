package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/a-boudoun/matcha-server/internal/matching"
	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/rs/zerolog"
)

// CandidatePredicates are the relational predicates the candidate store
// translates into its query: column ranges plus the always-on exclusion
// rules (self, blocks either direction, existing relationships from the
// requester, matches, incomplete or unverified profiles). Distance and
// shared-interest constraints are evaluated in code by the service.
type CandidatePredicates struct {
	MinAge        int
	MaxAge        int
	MinFameRating int
	MaxFameRating int
	Interests     []string
}

// CandidateStore executes the structured candidate query.
type CandidateStore interface {
	// FindEligible returns profiles (with interest tags) that pass the
	// exclusion rules and column predicates for the requester.
	FindEligible(ctx context.Context, requesterID uint, p CandidatePredicates) ([]models.Profile, error)
}

// RecommendService builds the ranked candidate list and the profile
// search results.
type RecommendService struct {
	profiles   ProfileStore
	candidates CandidateStore
	logger     zerolog.Logger
}

// NewRecommendService creates a RecommendService.
func NewRecommendService(profiles ProfileStore, candidates CandidateStore, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		profiles:   profiles,
		candidates: candidates,
		logger:     logger.With().Str("component", "recommend_service").Logger(),
	}
}

// GetCandidates returns up to 50 ranked candidates for the requester.
// Sort direction follows the key: distance and age ascend; requesting
// fame_rating or common_interests asks for that key ascending, which is
// otherwise used descending as a tiebreak-free single key.
func (s *RecommendService) GetCandidates(ctx context.Context, requesterID uint, filters models.CandidateFilters) ([]models.CandidateSummary, error) {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = models.SortByDistance
	}
	switch sortBy {
	case models.SortByDistance, models.SortByAge, models.SortByFameRating, models.SortByCommonInterests:
	default:
		return nil, fmt.Errorf("sort by %q: %w", sortBy, ErrInvalidSortKey)
	}

	requester, err := s.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("loading requester: %w", err)
	}

	eligible, err := s.candidates.FindEligible(ctx, requesterID, CandidatePredicates{
		MinAge:        filters.MinAge,
		MaxAge:        filters.MaxAge,
		MinFameRating: filters.MinFameRating,
		MaxFameRating: filters.MaxFameRating,
	})
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}

	summaries := s.evaluate(requester, eligible, filters)
	sortCandidates(summaries, sortBy)

	if len(summaries) > models.CandidateLimit {
		summaries = summaries[:models.CandidateLimit]
	}
	return summaries, nil
}

// SearchProfiles is the explicit search endpoint: same exclusion rules as
// the candidate list, plus an interest-tag filter requiring every
// requested tag, with page/limit pagination. Sort is always ascending
// except fame_rating, which descends.
func (s *RecommendService) SearchProfiles(ctx context.Context, requesterID uint, filters models.SearchFilters) ([]models.CandidateSummary, error) {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = models.SortByDistance
	}
	switch sortBy {
	case models.SortByDistance, models.SortByAge, models.SortByFameRating:
	default:
		return nil, fmt.Errorf("sort by %q: %w", sortBy, ErrInvalidSortKey)
	}

	requester, err := s.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("loading requester: %w", err)
	}

	eligible, err := s.candidates.FindEligible(ctx, requesterID, CandidatePredicates{
		MinAge:        filters.MinAge,
		MaxAge:        filters.MaxAge,
		MinFameRating: filters.MinFameRating,
		MaxFameRating: filters.MaxFameRating,
		Interests:     filters.Interests,
	})
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}

	summaries := s.evaluate(requester, eligible, filters.CandidateFilters)

	asc := sortBy != models.SortByFameRating
	sortSummaries(summaries, sortBy, asc)

	limit := filters.Limit
	if limit <= 0 || limit > models.CandidateLimit {
		limit = models.CandidateLimit
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(summaries) {
		return []models.CandidateSummary{}, nil
	}
	end := offset + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[offset:end], nil
}

// evaluate applies the pure compatibility, distance and shared-interest
// checks and projects the survivors into candidate summaries.
func (s *RecommendService) evaluate(requester *models.Profile, eligible []models.Profile, filters models.CandidateFilters) []models.CandidateSummary {
	origin := matching.Coordinates{Latitude: requester.Latitude, Longitude: requester.Longitude}
	requesterTags := requester.InterestNames()

	summaries := make([]models.CandidateSummary, 0, len(eligible))
	for i := range eligible {
		candidate := &eligible[i]
		if !matching.Compatible(requester, candidate) {
			continue
		}

		distance := matching.DistanceKm(origin, matching.Coordinates{
			Latitude:  candidate.Latitude,
			Longitude: candidate.Longitude,
		})
		if (filters.MinDistance > 0 && distance < filters.MinDistance) ||
			(filters.MaxDistance > 0 && distance > filters.MaxDistance) {
			continue
		}

		shared := matching.SharedInterestCount(requesterTags, candidate.InterestNames())
		if filters.CommonInterests > 0 && shared < filters.CommonInterests {
			continue
		}

		summaries = append(summaries, models.CandidateSummary{
			ID:             candidate.ID,
			FirstName:      candidate.FirstName,
			LastName:       candidate.LastName,
			ProfilePicture: candidate.ProfilePicture,
			Age:            candidate.Age,
			Gender:         candidate.Gender,
			FameRating:     candidate.FameRating,
			Biography:      candidate.Biography,
			Latitude:       candidate.Latitude,
			Longitude:      candidate.Longitude,
			Distance:       matching.RoundKm(distance),
			Interests:      candidate.InterestNames(),
			CommonCount:    shared,
		})
	}
	return summaries
}

// sortCandidates ranks the candidate list. The request carries only a
// sort key, so naming fame_rating or common_interests is the explicit
// request for that key's ascending order; distance and age always ascend.
func sortCandidates(summaries []models.CandidateSummary, sortBy string) {
	sortSummaries(summaries, sortBy, true)
}

func sortSummaries(summaries []models.CandidateSummary, sortBy string, asc bool) {
	less := func(a, b models.CandidateSummary) bool {
		switch sortBy {
		case models.SortByAge:
			return a.Age < b.Age
		case models.SortByFameRating:
			return a.FameRating < b.FameRating
		case models.SortByCommonInterests:
			return a.CommonCount < b.CommonCount
		default:
			return a.Distance < b.Distance
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if asc {
			return less(summaries[i], summaries[j])
		}
		return less(summaries[j], summaries[i])
	})
}
