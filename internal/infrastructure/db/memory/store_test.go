package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type fixture struct {
	users      *UserRepository
	tweets     *TweetRepository
	engagement *EngagementRepository
	follows    *FollowRepository
}

func newFixture() fixture {
	s := New()
	return fixture{
		users:      NewUserRepository(s),
		tweets:     NewTweetRepository(s),
		engagement: NewEngagementRepository(s),
		follows:    NewFollowRepository(s),
	}
}

func (f fixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{Username: name, Role: domain.RoleUser})
	require.NoError(t, err)
	return u
}

func (f fixture) tweet(t *testing.T, author *domain.User, content string) *domain.Tweet {
	t.Helper()
	tw, err := f.tweets.Create(context.Background(), &domain.Tweet{UserID: author.ID, Username: author.Username, Content: content})
	require.NoError(t, err)
	return tw
}

func TestUserRepository_CreateAssignsIncreasingIDs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := f.user(t, "alice")
	b := f.user(t, "bob")
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	_, err := f.users.Create(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = f.users.Delete(ctx, b.ID)
	require.NoError(t, err)

	c := f.user(t, "carol")
	assert.Equal(t, int64(3), c.ID, "ids are never reused")
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "alice")

	a.Role = domain.RoleAdmin
	got, err := f.users.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestUserRepository_FindByIDsSkipsMissing(t *testing.T) {
	f := newFixture()
	a := f.user(t, "alice")

	got, err := f.users.FindByIDs(context.Background(), []int64{a.ID, 99})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "alice", got[a.ID].Username)
}

func TestTweetRepository_ListNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.user(t, "alice")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct {
		content string
		offset  time.Duration
	}{
		{"old", 0},
		{"new", 2 * time.Hour},
		{"mid", time.Hour},
	}
	for _, s := range seed {
		_, err := f.tweets.Create(ctx, &domain.Tweet{UserID: a.ID, Username: a.Username, Content: s.content, Timestamp: base.Add(s.offset)})
		require.NoError(t, err)
	}

	list, err := f.tweets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].Content)
	assert.Equal(t, "mid", list[1].Content)
	assert.Equal(t, "old", list[2].Content)
}

func TestTweetRepository_DeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	keep := f.tweet(t, alice, "keep")
	drop := f.tweet(t, alice, "drop")

	_, _, err := f.engagement.Toggle(ctx, domain.Like, drop.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = f.engagement.Toggle(ctx, domain.Retweet, drop.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.engagement.AddReply(ctx, &domain.Reply{TweetID: drop.ID, UserID: bob.ID, Username: bob.Username, Content: "hey"})
	require.NoError(t, err)
	_, _, err = f.engagement.Toggle(ctx, domain.Like, keep.ID, bob.ID)
	require.NoError(t, err)

	u, _ := f.users.FindByID(ctx, alice.ID)
	assert.Equal(t, 2, u.TweetsCount)

	deleted, err := f.tweets.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "drop", deleted.Content)

	_, err = f.tweets.FindByID(ctx, drop.ID)
	assert.ErrorIs(t, err, domain.ErrTweetNotFound)

	stats, err := f.engagement.Stats(ctx, []int64{drop.ID, keep.ID}, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Engagement{}, stats[drop.ID])
	assert.Equal(t, domain.Engagement{Likes: 1, Liked: true}, stats[keep.ID])

	replies, err := f.engagement.ListReplies(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)

	u, _ = f.users.FindByID(ctx, alice.ID)
	assert.Equal(t, 1, u.TweetsCount)
}

func TestTweetRepository_DeleteNeverUnderflowsCount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	tw := f.tweet(t, alice, "hi")

	// Simulate a stored counter that drifted to zero.
	f.users.s.users[alice.ID].TweetsCount = 0

	_, err := f.tweets.Delete(ctx, tw.ID)
	require.NoError(t, err)
	u, _ := f.users.FindByID(ctx, alice.ID)
	assert.Equal(t, 0, u.TweetsCount)
}

func TestEngagementRepository_ToggleParity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	tw := f.tweet(t, alice, "hi")

	for i := 1; i <= 5; i++ {
		liked, count, err := f.engagement.Toggle(ctx, domain.Like, tw.ID, bob.ID)
		require.NoError(t, err)
		if i%2 == 1 {
			assert.True(t, liked)
			assert.Equal(t, 1, count)
		} else {
			assert.False(t, liked)
			assert.Equal(t, 0, count)
		}
	}
}

func TestEngagementRepository_ToggleMissingTweet(t *testing.T) {
	f := newFixture()
	bob := f.user(t, "bob")

	_, _, err := f.engagement.Toggle(context.Background(), domain.Retweet, 42, bob.ID)
	assert.ErrorIs(t, err, domain.ErrTweetNotFound)

	_, err = f.engagement.AddReply(context.Background(), &domain.Reply{TweetID: 42, UserID: bob.ID, Content: "x"})
	assert.ErrorIs(t, err, domain.ErrTweetNotFound)
}

func TestEngagementRepository_ConcurrentTogglesKeepOneRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	tw := f.tweet(t, alice, "hi")

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, err := f.engagement.Toggle(ctx, domain.Like, tw.ID, bob.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := f.engagement.Stats(ctx, []int64{tw.ID}, bob.ID)
	require.NoError(t, err)
	// An even number of toggles lands back on the baseline.
	assert.Equal(t, 0, stats[tw.ID].Likes)
	assert.False(t, stats[tw.ID].Liked)
}

func TestEngagementRepository_StatsAnonymousViewer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	tw := f.tweet(t, alice, "hi")

	_, _, err := f.engagement.Toggle(ctx, domain.Like, tw.ID, alice.ID)
	require.NoError(t, err)

	stats, err := f.engagement.Stats(ctx, []int64{tw.ID}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[tw.ID].Likes)
	assert.False(t, stats[tw.ID].Liked)
}

func TestFollowRepository_Toggle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	following, followers, err := f.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, followers)

	ok, err := f.follows.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	followersOfBob, followingOfBob, err := f.follows.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, followersOfBob)
	assert.Equal(t, 0, followingOfBob)

	following, followers, err = f.follows.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, 0, followers)

	_, _, err = f.follows.Toggle(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)

	_, _, err = f.follows.Toggle(ctx, alice.ID, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DeleteLeavesContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.user(t, "alice")
	tw := f.tweet(t, alice, "hi")

	_, err := f.users.Delete(ctx, alice.ID)
	require.NoError(t, err)

	got, err := f.tweets.FindByID(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)
}
