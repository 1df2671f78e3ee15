package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/a-boudoun/matcha-server/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchService(profiles ...*models.Profile) (*MatchService, *fakeStores, *fakeNotifier) {
	stores := newFakeStores(profiles...)
	notifier := &fakeNotifier{}
	return NewMatchService(stores, notifier, zerolog.Nop()), stores, notifier
}

func TestSwipeLeftRecordsDislikeAndLowersFame(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	err := svc.SwipeLeft(context.Background(), 1, 2)
	require.NoError(t, err)

	rel := stores.state.relationship(1, 2)
	require.NotNil(t, rel)
	assert.Equal(t, models.StatusDisliked, rel.Status)
	assert.Equal(t, models.DefaultFameRating-5, stores.state.fame(2))

	// A dislike is silent.
	assert.Empty(t, notifier.notifications)
}

func TestSwipeLeftTwiceConflicts(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.SwipeLeft(context.Background(), 1, 2))
	err := svc.SwipeLeft(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)

	// The failed attempt must not touch fame again.
	assert.Equal(t, models.DefaultFameRating-5, stores.state.fame(2))
}

func TestSwipeRightWithoutReciprocation(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	matched, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)

	rel := stores.state.relationship(1, 2)
	require.NotNil(t, rel)
	assert.Equal(t, models.StatusLiked, rel.Status)
	assert.Equal(t, models.DefaultFameRating+5, stores.state.fame(2))
	assert.Equal(t, models.DefaultFameRating, stores.state.fame(1))

	require.Len(t, notifier.notifications, 1)
	assert.Equal(t, uint(1), notifier.notifications[0].SenderID)
	assert.Equal(t, uint(2), notifier.notifications[0].ReceiverID)
	assert.Empty(t, notifier.matchPushes)
}

func TestMutualLikeCreatesMatch(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	matched, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	require.False(t, matched)

	matched, err = svc.SwipeRight(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, matched)

	// Both rows hold MATCH, no third row was inserted.
	assert.Equal(t, models.StatusMatch, stores.state.relationship(1, 2).Status)
	assert.Equal(t, models.StatusMatch, stores.state.relationship(2, 1).Status)
	assert.Len(t, stores.state.relationships, 2)

	// First like gave user 2 +5; the match gives both +10.
	assert.Equal(t, models.DefaultFameRating+5+10, stores.state.fame(2))
	assert.Equal(t, models.DefaultFameRating+10, stores.state.fame(1))

	// Both sides are told and pushed.
	assert.Len(t, notifier.notifications, 3)
	assert.ElementsMatch(t, []uint{1, 2}, notifier.matchPushes)
}

func TestSwipeRightOnDislikedRowConflicts(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.SwipeLeft(context.Background(), 1, 2))
	_, err := svc.SwipeRight(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLikeUserOverwritesPriorDislike(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.SwipeLeft(context.Background(), 1, 2))
	matched, err := svc.LikeUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)

	assert.Equal(t, models.StatusLiked, stores.state.relationship(1, 2).Status)
}

func TestLikeUserCompletesMatchOverDislike(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.SwipeLeft(context.Background(), 1, 2))
	_, err := svc.SwipeRight(context.Background(), 2, 1)
	require.NoError(t, err)

	matched, err := svc.LikeUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, models.StatusMatch, stores.state.relationship(1, 2).Status)
	assert.Equal(t, models.StatusMatch, stores.state.relationship(2, 1).Status)
}

func TestLikeUserTwiceConflicts(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.LikeUser(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.LikeUser(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSwipeSelfRejected(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"))

	assert.ErrorIs(t, svc.SwipeLeft(context.Background(), 1, 1), ErrConflict)
	_, err := svc.SwipeRight(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSwipeUnusableReceiverRejected(t *testing.T) {
	incomplete := usableProfile(2, "Sara")
	incomplete.ProfileCompleted = false
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), incomplete)

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSwipeUnknownReceiverNotFound(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"))

	_, err := svc.SwipeRight(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSwipeBlockedPairRejected(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))
	stores.state.blocks[pair{2, 1}] = true

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUnlikeRemovesLikeAndLowersFame(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.UnlikeUser(context.Background(), 1, 2))
	assert.Nil(t, stores.state.relationship(1, 2))
	// +5 from the like, -5 from the unlike.
	assert.Equal(t, models.DefaultFameRating, stores.state.fame(2))

	last := notifier.notifications[len(notifier.notifications)-1]
	assert.Equal(t, msgUnliked, last.Message)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	assert.ErrorIs(t, svc.UnlikeUser(context.Background(), 1, 2), ErrConflict)
}

func TestUnlikeBlockedPairForbidden(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	stores.state.blocks[pair{1, 2}] = true

	assert.ErrorIs(t, svc.UnlikeUser(context.Background(), 1, 2), ErrBlocked)
}

func TestUnmatchDeletesBothRowsWithAsymmetricPenalty(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.SwipeRight(context.Background(), 2, 1)
	require.NoError(t, err)

	fameBefore1 := stores.state.fame(1)
	fameBefore2 := stores.state.fame(2)

	require.NoError(t, svc.UnmatchUser(context.Background(), 1, 2))

	assert.Nil(t, stores.state.relationship(1, 2))
	assert.Nil(t, stores.state.relationship(2, 1))
	assert.Equal(t, fameBefore1-5, stores.state.fame(1))
	assert.Equal(t, fameBefore2-10, stores.state.fame(2))

	last := notifier.notifications[len(notifier.notifications)-1]
	assert.Equal(t, msgUnmatched, last.Message)
	assert.Equal(t, uint(2), last.ReceiverID)
}

func TestUnmatchWithoutMatchConflicts(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UnmatchUser(context.Background(), 1, 2), ErrConflict)
}

func TestBlockDissolvesMatchSilently(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.SwipeRight(context.Background(), 2, 1)
	require.NoError(t, err)

	fameBefore1 := stores.state.fame(1)
	fameBefore2 := stores.state.fame(2)
	sent := len(notifier.notifications)

	require.NoError(t, svc.BlockUser(context.Background(), 1, 2))

	assert.True(t, stores.state.blocks[pair{1, 2}])
	assert.Nil(t, stores.state.relationship(1, 2))
	assert.Nil(t, stores.state.relationship(2, 1))
	assert.Equal(t, fameBefore1-5, stores.state.fame(1))
	assert.Equal(t, fameBefore2-10, stores.state.fame(2))

	// Blocking must not tell the blocked user anything.
	assert.Len(t, notifier.notifications, sent)
}

func TestBlockTwiceConflicts(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.BlockUser(context.Background(), 1, 2))
	assert.ErrorIs(t, svc.BlockUser(context.Background(), 1, 2), ErrConflict)
}

func TestBlockedPairCannotSwipe(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.BlockUser(context.Background(), 1, 2))

	// Neither direction may act afterwards.
	_, err := svc.SwipeRight(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, svc.SwipeLeft(context.Background(), 1, 2), ErrConflict)
}

func TestReportUser(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.ReportUser(context.Background(), 1, 2))
	assert.True(t, stores.state.reports[pair{1, 2}])

	assert.ErrorIs(t, svc.ReportUser(context.Background(), 1, 2), ErrConflict)
}

func TestRecordProfileView(t *testing.T) {
	svc, stores, notifier := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	require.NoError(t, svc.RecordProfileView(context.Background(), 1, 2))
	require.Len(t, stores.state.visits, 1)
	assert.Equal(t, uint(1), stores.state.visits[0].VisitorID)

	last := notifier.notifications[len(notifier.notifications)-1]
	assert.Equal(t, msgVisited, last.Message)
}

func TestRecordProfileViewBlockedForbidden(t *testing.T) {
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))
	stores.state.blocks[pair{2, 1}] = true

	assert.ErrorIs(t, svc.RecordProfileView(context.Background(), 1, 2), ErrBlocked)
}

func TestFameRatingClampedUnderConcurrentLikes(t *testing.T) {
	receiver := usableProfile(100, "Sara")
	receiver.FameRating = models.FameRatingMax - 3

	profiles := []*models.Profile{receiver}
	for i := uint(1); i <= 20; i++ {
		profiles = append(profiles, usableProfile(i, fmt.Sprintf("User%d", i)))
	}
	svc, stores, _ := newTestMatchService(profiles...)

	var wg sync.WaitGroup
	for i := uint(1); i <= 20; i++ {
		wg.Add(1)
		go func(initiator uint) {
			defer wg.Done()
			_, err := svc.SwipeRight(context.Background(), initiator, 100)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, models.FameRatingMax, stores.state.fame(100))
}

func TestFameRatingClampedAtFloor(t *testing.T) {
	receiver := usableProfile(2, "Sara")
	receiver.FameRating = models.FameRatingMin + 2
	svc, stores, _ := newTestMatchService(usableProfile(1, "Ayoub"), receiver)

	require.NoError(t, svc.SwipeLeft(context.Background(), 1, 2))
	assert.Equal(t, models.FameRatingMin, stores.state.fame(2))
}

func TestGetUserMatches(t *testing.T) {
	svc, _, _ := newTestMatchService(usableProfile(1, "Ayoub"), usableProfile(2, "Sara"))

	_, err := svc.SwipeRight(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.SwipeRight(context.Background(), 2, 1)
	require.NoError(t, err)

	matches, err := svc.GetUserMatches(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, uint(2), matches[0].ID)
}
