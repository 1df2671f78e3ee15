package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/a-boudoun/matcha-server/internal/models"
)

// pair is an ordered (initiator, receiver) edge key.
type pair [2]uint

// fakeState is the shared in-memory backing for fakeStores. Atomic
// serializes writers on the mutex; individual store methods stay
// lock-free so they can run inside an Atomic section.
type fakeState struct {
	mu sync.Mutex

	profiles      map[uint]*models.Profile
	relationships map[pair]*models.Relationship
	blocks        map[pair]bool
	reports       map[pair]bool
	visits        []models.Visit

	nextRelID uint
}

func newFakeState(profiles ...*models.Profile) *fakeState {
	state := &fakeState{
		profiles:      make(map[uint]*models.Profile),
		relationships: make(map[pair]*models.Relationship),
		blocks:        make(map[pair]bool),
		reports:       make(map[pair]bool),
	}
	for _, p := range profiles {
		state.profiles[p.ID] = p
	}
	return state
}

func (st *fakeState) relationship(initiatorID, receiverID uint) *models.Relationship {
	return st.relationships[pair{initiatorID, receiverID}]
}

func (st *fakeState) fame(id uint) int {
	return st.profiles[id].FameRating
}

// fakeStores implements Stores over fakeState.
type fakeStores struct {
	state *fakeState
}

func newFakeStores(profiles ...*models.Profile) *fakeStores {
	return &fakeStores{state: newFakeState(profiles...)}
}

func (s *fakeStores) Profiles() ProfileStore           { return &fakeProfileStore{s.state} }
func (s *fakeStores) Relationships() RelationshipStore { return &fakeRelationshipStore{s.state} }
func (s *fakeStores) Blocks() BlockStore               { return &fakeBlockStore{s.state} }
func (s *fakeStores) Visits() VisitStore               { return &fakeVisitStore{s.state} }

func (s *fakeStores) Atomic(ctx context.Context, fn func(tx Stores) error) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return fn(s)
}

type fakeProfileStore struct{ state *fakeState }

func (f *fakeProfileStore) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	p, ok := f.state.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.state.profiles[id]
	return ok, nil
}

func (f *fakeProfileStore) AdjustFame(ctx context.Context, id uint, delta int) error {
	p, ok := f.state.profiles[id]
	if !ok {
		return fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	fame := p.FameRating + delta
	if fame < models.FameRatingMin {
		fame = models.FameRatingMin
	}
	if fame > models.FameRatingMax {
		fame = models.FameRatingMax
	}
	p.FameRating = fame
	return nil
}

func (f *fakeProfileStore) SetOnline(ctx context.Context, id uint, online bool) error {
	p, ok := f.state.profiles[id]
	if !ok {
		return fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	p.IsActive = online
	return nil
}

type fakeRelationshipStore struct{ state *fakeState }

func (f *fakeRelationshipStore) Find(ctx context.Context, initiatorID, receiverID uint) (*models.Relationship, error) {
	rel := f.state.relationships[pair{initiatorID, receiverID}]
	if rel == nil {
		return nil, nil
	}
	copied := *rel
	return &copied, nil
}

func (f *fakeRelationshipStore) HasAnyFrom(ctx context.Context, initiatorID, receiverID uint) (bool, error) {
	_, ok := f.state.relationships[pair{initiatorID, receiverID}]
	return ok, nil
}

func (f *fakeRelationshipStore) IsMatch(ctx context.Context, a, b uint) (bool, error) {
	for _, key := range []pair{{a, b}, {b, a}} {
		if rel := f.state.relationships[key]; rel != nil && rel.Status == models.StatusMatch {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRelationshipStore) Insert(ctx context.Context, rel *models.Relationship) error {
	key := pair{rel.InitiatorID, rel.ReceiverID}
	if _, ok := f.state.relationships[key]; ok {
		return fmt.Errorf("duplicate relationship %v", key)
	}
	f.state.nextRelID++
	stored := *rel
	stored.ID = f.state.nextRelID
	stored.CreatedAt = time.Now()
	f.state.relationships[key] = &stored
	return nil
}

func (f *fakeRelationshipStore) UpsertLike(ctx context.Context, initiatorID, receiverID uint) error {
	key := pair{initiatorID, receiverID}
	if rel, ok := f.state.relationships[key]; ok {
		rel.Status = models.StatusLiked
		return nil
	}
	return f.Insert(ctx, &models.Relationship{
		InitiatorID: initiatorID,
		ReceiverID:  receiverID,
		Status:      models.StatusLiked,
	})
}

func (f *fakeRelationshipStore) PromoteToMatch(ctx context.Context, a, b uint) error {
	for _, key := range []pair{{a, b}, {b, a}} {
		if rel := f.state.relationships[key]; rel != nil {
			rel.Status = models.StatusMatch
		}
	}
	return nil
}

func (f *fakeRelationshipStore) DeleteLike(ctx context.Context, initiatorID, receiverID uint) error {
	delete(f.state.relationships, pair{initiatorID, receiverID})
	return nil
}

func (f *fakeRelationshipStore) DeleteMatch(ctx context.Context, a, b uint) error {
	delete(f.state.relationships, pair{a, b})
	delete(f.state.relationships, pair{b, a})
	return nil
}

func (f *fakeRelationshipStore) ListMatches(ctx context.Context, userID uint, page, limit int) ([]models.MatchSummary, error) {
	matches := []models.MatchSummary{}
	for key, rel := range f.state.relationships {
		if rel.Status != models.StatusMatch || key[0] != userID {
			continue
		}
		other := f.state.profiles[key[1]]
		if other == nil {
			continue
		}
		matches = append(matches, models.MatchSummary{
			ID:             other.ID,
			FirstName:      other.FirstName,
			LastName:       other.LastName,
			ProfilePicture: other.ProfilePicture,
			Age:            other.Age,
			FameRating:     other.FameRating,
			Gender:         other.Gender,
		})
	}
	return matches, nil
}

func (f *fakeRelationshipStore) ListLikesReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error) {
	likes := []models.HistoryEntry{}
	for key, rel := range f.state.relationships {
		if rel.Status != models.StatusLiked || key[1] != userID {
			continue
		}
		sender := f.state.profiles[key[0]]
		if sender == nil {
			continue
		}
		likes = append(likes, models.HistoryEntry{
			ID:         rel.ID,
			SenderID:   sender.ID,
			SenderName: sender.FullName(),
			CreatedAt:  rel.CreatedAt,
		})
	}
	return likes, nil
}

type fakeBlockStore struct{ state *fakeState }

func (f *fakeBlockStore) ExistsBetween(ctx context.Context, a, b uint) (bool, error) {
	return f.state.blocks[pair{a, b}] || f.state.blocks[pair{b, a}], nil
}

func (f *fakeBlockStore) Insert(ctx context.Context, blockerID, blockedID uint) error {
	f.state.blocks[pair{blockerID, blockedID}] = true
	return nil
}

func (f *fakeBlockStore) ReportExists(ctx context.Context, reporterID, reportedID uint) (bool, error) {
	return f.state.reports[pair{reporterID, reportedID}], nil
}

func (f *fakeBlockStore) InsertReport(ctx context.Context, reporterID, reportedID uint) error {
	f.state.reports[pair{reporterID, reportedID}] = true
	return nil
}

type fakeVisitStore struct{ state *fakeState }

func (f *fakeVisitStore) Insert(ctx context.Context, visitorID, visitedID uint) error {
	f.state.visits = append(f.state.visits, models.Visit{
		VisitorID: visitorID,
		VisitedID: visitedID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeVisitStore) ListVisitsReceived(ctx context.Context, userID uint, page, limit int) ([]models.HistoryEntry, error) {
	visits := []models.HistoryEntry{}
	for _, v := range f.state.visits {
		if v.VisitedID != userID {
			continue
		}
		visitor := f.state.profiles[v.VisitorID]
		if visitor == nil {
			continue
		}
		visits = append(visits, models.HistoryEntry{
			SenderID:   visitor.ID,
			SenderName: visitor.FullName(),
			CreatedAt:  v.CreatedAt,
		})
	}
	return visits, nil
}

// recordedNotification captures one Notify call.
type recordedNotification struct {
	SenderID   uint
	ReceiverID uint
	Message    string
}

// fakeNotifier records transition notifications.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []recordedNotification
	matchPushes   []uint
}

func (f *fakeNotifier) Notify(ctx context.Context, senderID, receiverID uint, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, recordedNotification{senderID, receiverID, message})
}

func (f *fakeNotifier) PushMatch(userID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchPushes = append(f.matchPushes, userID)
}

func usableProfile(id uint, name string) *models.Profile {
	return &models.Profile{
		ID:               id,
		FirstName:        name,
		LastName:         "Tester",
		Age:              25,
		Gender:           models.GenderFemale,
		FameRating:       models.DefaultFameRating,
		ProfileCompleted: true,
		EmailVerified:    true,
	}
}
