package services

import (
	"context"
	"fmt"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/a-boudoun/matcha-server/pkg/metrics"
	"github.com/rs/zerolog"
)

// Fame-rating deltas applied by relationship transitions. The unmatch
// asymmetry (initiator -5, receiver -10) reproduces observed production
// behavior; its intent is an open product question, not a bug to fix.
const (
	fameLikeDelta        = 5
	fameDislikeDelta     = 5
	fameMatchDelta       = 10
	fameUnlikeDelta      = 5
	fameUnmatchInitiator = 5
	fameUnmatchReceiver  = 10
)

// Notification messages produced by transitions.
const (
	msgLiked     = "liked you! check them out."
	msgMatched   = "is your match now! Say hi to start a conversation."
	msgUnliked   = "unliked you!"
	msgUnmatched = "unmatched you!"
	msgVisited   = "visited your profile"
)

// TransitionNotifier is the notification side effect of a transition.
// Implementations must be fire-and-forget: they never return errors and
// never block the calling transition.
type TransitionNotifier interface {
	Notify(ctx context.Context, senderID, receiverID uint, message string)
	PushMatch(userID uint)
}

// MatchService is the relationship state machine. Every transition runs
// its precondition check and mutation inside one store transaction, so
// concurrent transitions on the same ordered pair serialize; fame-rating
// side effects commit together with the relationship write. Notifications
// fire after a successful commit.
type MatchService struct {
	stores   Stores
	notifier TransitionNotifier
	logger   zerolog.Logger
}

// NewMatchService creates a MatchService.
func NewMatchService(stores Stores, notifier TransitionNotifier, logger zerolog.Logger) *MatchService {
	return &MatchService{
		stores:   stores,
		notifier: notifier,
		logger:   logger.With().Str("component", "match_service").Logger(),
	}
}

// canSwipe enforces the shared swipe precondition: the receiver exists
// and is usable, no block exists in either direction, the initiator has
// no existing row toward the receiver, and the pair is not matched.
func canSwipe(ctx context.Context, tx Stores, initiatorID, receiverID uint) error {
	receiver, err := tx.Profiles().GetByID(ctx, receiverID)
	if err != nil {
		return err
	}
	if !receiver.Usable() {
		return fmt.Errorf("receiver profile not usable: %w", ErrConflict)
	}

	blocked, err := tx.Blocks().ExistsBetween(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("pair is blocked: %w", ErrConflict)
	}

	exists, err := tx.Relationships().HasAnyFrom(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("already swiped: %w", ErrConflict)
	}

	matched, err := tx.Relationships().IsMatch(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if matched {
		return fmt.Errorf("pair already matched: %w", ErrConflict)
	}

	return nil
}

// SwipeLeft records a dislike. The receiver loses fame; no notification
// is produced for a dislike.
func (s *MatchService) SwipeLeft(ctx context.Context, initiatorID, receiverID uint) error {
	if initiatorID == receiverID {
		return fmt.Errorf("cannot swipe yourself: %w", ErrConflict)
	}

	err := s.stores.Atomic(ctx, func(tx Stores) error {
		if err := canSwipe(ctx, tx, initiatorID, receiverID); err != nil {
			return err
		}
		rel := &models.Relationship{
			InitiatorID: initiatorID,
			ReceiverID:  receiverID,
			Status:      models.StatusDisliked,
		}
		if err := tx.Relationships().Insert(ctx, rel); err != nil {
			return err
		}
		return tx.Profiles().AdjustFame(ctx, receiverID, -fameDislikeDelta)
	})
	if err != nil {
		return err
	}

	metrics.SwipeProcessed("left")
	return nil
}

// SwipeRight records a like. When the receiver already liked the
// initiator, both rows are promoted to MATCH, both users gain fame, and
// both are notified and pushed a new_match event. Otherwise a LIKED row
// is inserted and the receiver is notified. Returns whether a match was
// created.
func (s *MatchService) SwipeRight(ctx context.Context, initiatorID, receiverID uint) (bool, error) {
	if initiatorID == receiverID {
		return false, fmt.Errorf("cannot swipe yourself: %w", ErrConflict)
	}

	matched := false
	err := s.stores.Atomic(ctx, func(tx Stores) error {
		if err := canSwipe(ctx, tx, initiatorID, receiverID); err != nil {
			return err
		}
		insert := func(ctx context.Context) error {
			return tx.Relationships().Insert(ctx, &models.Relationship{
				InitiatorID: initiatorID,
				ReceiverID:  receiverID,
				Status:      models.StatusLiked,
			})
		}
		var err error
		matched, err = s.likeOrMatch(ctx, tx, initiatorID, receiverID, insert)
		return err
	})
	if err != nil {
		return false, err
	}

	metrics.SwipeProcessed("right")
	s.afterLike(ctx, initiatorID, receiverID, matched)
	return matched, nil
}

// LikeUser is the explicit like action. Unlike SwipeRight it permits
// overwriting a prior DISLIKED row via upsert semantics.
func (s *MatchService) LikeUser(ctx context.Context, initiatorID, receiverID uint) (bool, error) {
	if initiatorID == receiverID {
		return false, fmt.Errorf("cannot like yourself: %w", ErrConflict)
	}

	matched := false
	err := s.stores.Atomic(ctx, func(tx Stores) error {
		if err := s.canLike(ctx, tx, initiatorID, receiverID); err != nil {
			return err
		}
		upsert := func(ctx context.Context) error {
			return tx.Relationships().UpsertLike(ctx, initiatorID, receiverID)
		}
		var err error
		matched, err = s.likeOrMatch(ctx, tx, initiatorID, receiverID, upsert)
		return err
	})
	if err != nil {
		return false, err
	}

	s.afterLike(ctx, initiatorID, receiverID, matched)
	return matched, nil
}

// likeOrMatch runs the shared match-or-insert step: the initiator's LIKED
// row is written first so a mutual like promotes two existing rows, never
// inserting a MATCH row directly.
func (s *MatchService) likeOrMatch(ctx context.Context, tx Stores, initiatorID, receiverID uint, write func(context.Context) error) (bool, error) {
	reverse, err := tx.Relationships().Find(ctx, receiverID, initiatorID)
	if err != nil {
		return false, err
	}
	mutual := reverse != nil && reverse.Status == models.StatusLiked

	if err := write(ctx); err != nil {
		return false, err
	}

	if !mutual {
		return false, tx.Profiles().AdjustFame(ctx, receiverID, fameLikeDelta)
	}

	if err := tx.Relationships().PromoteToMatch(ctx, initiatorID, receiverID); err != nil {
		return false, err
	}
	if err := tx.Profiles().AdjustFame(ctx, initiatorID, fameMatchDelta); err != nil {
		return false, err
	}
	if err := tx.Profiles().AdjustFame(ctx, receiverID, fameMatchDelta); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MatchService) afterLike(ctx context.Context, initiatorID, receiverID uint, matched bool) {
	if matched {
		metrics.MatchCreated()
		s.notifier.Notify(ctx, initiatorID, receiverID, msgMatched)
		s.notifier.Notify(ctx, receiverID, initiatorID, msgMatched)
		s.notifier.PushMatch(initiatorID)
		s.notifier.PushMatch(receiverID)
		s.logger.Info().Uint("initiator_id", initiatorID).Uint("receiver_id", receiverID).Msg("match created")
		return
	}
	s.notifier.Notify(ctx, initiatorID, receiverID, msgLiked)
}

// canLike allows a like over a prior DISLIKED row: it rejects only an
// existing LIKED row from the initiator or a MATCH in either direction.
func (s *MatchService) canLike(ctx context.Context, tx Stores, initiatorID, receiverID uint) error {
	receiver, err := tx.Profiles().GetByID(ctx, receiverID)
	if err != nil {
		return err
	}
	if !receiver.Usable() {
		return fmt.Errorf("receiver profile not usable: %w", ErrConflict)
	}

	blocked, err := tx.Blocks().ExistsBetween(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("pair is blocked: %w", ErrConflict)
	}

	existing, err := tx.Relationships().Find(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Status != models.StatusDisliked {
		return fmt.Errorf("already liked: %w", ErrConflict)
	}

	matched, err := tx.Relationships().IsMatch(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if matched {
		return fmt.Errorf("pair already matched: %w", ErrConflict)
	}

	return nil
}

// UnlikeUser removes a previously given like. The precondition verifies
// an existing LIKED edge from the initiator (the original system called
// this check "can dislike"; it gates un-liking and is named accordingly
// here). A block between the pair forbids the action.
func (s *MatchService) UnlikeUser(ctx context.Context, initiatorID, receiverID uint) error {
	if initiatorID == receiverID {
		return fmt.Errorf("cannot unlike yourself: %w", ErrConflict)
	}

	err := s.stores.Atomic(ctx, func(tx Stores) error {
		if err := s.canUnlike(ctx, tx, initiatorID, receiverID); err != nil {
			return err
		}
		if err := tx.Relationships().DeleteLike(ctx, initiatorID, receiverID); err != nil {
			return err
		}
		return tx.Profiles().AdjustFame(ctx, receiverID, -fameUnlikeDelta)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, initiatorID, receiverID, msgUnliked)
	return nil
}

func (s *MatchService) canUnlike(ctx context.Context, tx Stores, initiatorID, receiverID uint) error {
	exists, err := tx.Profiles().Exists(ctx, receiverID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("receiver %d: %w", receiverID, ErrNotFound)
	}

	blocked, err := tx.Blocks().ExistsBetween(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("cannot unlike: %w", ErrBlocked)
	}

	rel, err := tx.Relationships().Find(ctx, initiatorID, receiverID)
	if err != nil {
		return err
	}
	if rel == nil || rel.Status != models.StatusLiked {
		return fmt.Errorf("no like to remove: %w", ErrConflict)
	}
	return nil
}

// UnmatchUser dissolves a match: both MATCH rows are deleted and fame is
// reduced asymmetrically (initiator -5, receiver -10, observed behavior).
func (s *MatchService) UnmatchUser(ctx context.Context, initiatorID, receiverID uint) error {
	if initiatorID == receiverID {
		return fmt.Errorf("cannot unmatch yourself: %w", ErrConflict)
	}

	err := s.stores.Atomic(ctx, func(tx Stores) error {
		exists, err := tx.Profiles().Exists(ctx, receiverID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("receiver %d: %w", receiverID, ErrNotFound)
		}

		blocked, err := tx.Blocks().ExistsBetween(ctx, initiatorID, receiverID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("cannot unmatch: %w", ErrBlocked)
		}

		matched, err := tx.Relationships().IsMatch(ctx, initiatorID, receiverID)
		if err != nil {
			return err
		}
		if !matched {
			return fmt.Errorf("users are not matched: %w", ErrConflict)
		}

		return s.dissolveMatch(ctx, tx, initiatorID, receiverID)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, initiatorID, receiverID, msgUnmatched)
	return nil
}

// dissolveMatch applies the unmatch effects within the caller's
// transaction: both MATCH rows deleted, asymmetric fame penalty.
func (s *MatchService) dissolveMatch(ctx context.Context, tx Stores, initiatorID, receiverID uint) error {
	if err := tx.Relationships().DeleteMatch(ctx, initiatorID, receiverID); err != nil {
		return err
	}
	if err := tx.Profiles().AdjustFame(ctx, initiatorID, -fameUnmatchInitiator); err != nil {
		return err
	}
	return tx.Profiles().AdjustFame(ctx, receiverID, -fameUnmatchReceiver)
}

// BlockUser inserts a block edge and dissolves any existing match inside
// the same transaction. The blocked user is not notified.
func (s *MatchService) BlockUser(ctx context.Context, blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return fmt.Errorf("cannot block yourself: %w", ErrConflict)
	}

	return s.stores.Atomic(ctx, func(tx Stores) error {
		exists, err := tx.Profiles().Exists(ctx, blockedID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("blocked user %d: %w", blockedID, ErrNotFound)
		}

		blocked, err := tx.Blocks().ExistsBetween(ctx, blockerID, blockedID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("already blocked: %w", ErrConflict)
		}

		if err := tx.Blocks().Insert(ctx, blockerID, blockedID); err != nil {
			return err
		}

		matched, err := tx.Relationships().IsMatch(ctx, blockerID, blockedID)
		if err != nil {
			return err
		}
		if matched {
			return s.dissolveMatch(ctx, tx, blockerID, blockedID)
		}
		return nil
	})
}

// ReportUser records a fake-account report.
func (s *MatchService) ReportUser(ctx context.Context, reporterID, reportedID uint) error {
	if reporterID == reportedID {
		return fmt.Errorf("cannot report yourself: %w", ErrConflict)
	}

	return s.stores.Atomic(ctx, func(tx Stores) error {
		exists, err := tx.Profiles().Exists(ctx, reportedID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("reported user %d: %w", reportedID, ErrNotFound)
		}

		reported, err := tx.Blocks().ReportExists(ctx, reporterID, reportedID)
		if err != nil {
			return err
		}
		if reported {
			return fmt.Errorf("already reported: %w", ErrConflict)
		}
		return tx.Blocks().InsertReport(ctx, reporterID, reportedID)
	})
}

// RecordProfileView stores a visit and notifies the visited user.
func (s *MatchService) RecordProfileView(ctx context.Context, viewerID, viewedID uint) error {
	if viewerID == viewedID {
		return fmt.Errorf("cannot record a self view: %w", ErrConflict)
	}

	err := s.stores.Atomic(ctx, func(tx Stores) error {
		exists, err := tx.Profiles().Exists(ctx, viewedID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("viewed user %d: %w", viewedID, ErrNotFound)
		}

		blocked, err := tx.Blocks().ExistsBetween(ctx, viewerID, viewedID)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("cannot view profile: %w", ErrBlocked)
		}
		return tx.Visits().Insert(ctx, viewerID, viewedID)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, viewerID, viewedID, msgVisited)
	return nil
}

// GetUserMatches lists the requesting user's matches, paginated.
func (s *MatchService) GetUserMatches(ctx context.Context, userID uint, page, limit int) ([]models.MatchSummary, error) {
	return s.stores.Relationships().ListMatches(ctx, userID, page, limit)
}
