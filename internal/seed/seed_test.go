package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/infrastructure/db/memory"
)

func newSeeder() (*Seeder, Repositories) {
	s := memory.New()
	repos := Repositories{
		Users:   memory.NewUserRepository(s),
		Tweets:  memory.NewTweetRepository(s),
		Follows: memory.NewFollowRepository(s),
	}
	return New(repos, zerolog.Nop(), WithRandSeed(42), WithHashCost(bcrypt.MinCost)), repos
}

func TestParse_EmbeddedFixture(t *testing.T) {
	d, err := Parse(fixture)
	require.NoError(t, err)

	assert.Len(t, d.Users, 6)
	assert.Len(t, d.Tweets, 22)
	assert.Len(t, d.Follows, 10)
	for _, tw := range d.Tweets {
		_, err := domain.NormalizeContent(tw.Content)
		assert.NoError(t, err, tw.Content)
		assert.LessOrEqual(t, len(tw.Images), domain.MaxTweetImages)
	}
	for _, u := range d.Users {
		assert.True(t, domain.ValidRole(u.Role), u.Username)
	}
}

func TestRun_PopulatesEmptyStore(t *testing.T) {
	seeder, repos := newSeeder()
	ctx := context.Background()
	require.NoError(t, seeder.Run(ctx))

	admin, err := repos.Users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("adminpass")))

	editor, err := repos.Users.FindByUsername(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, editor.Role)

	tweets, err := repos.Tweets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 22)

	week := time.Now().UTC().AddDate(0, 0, -7).Add(-time.Minute)
	for _, tw := range tweets {
		assert.True(t, tw.Timestamp.After(week), "timestamp %s outside the last week", tw.Timestamp)
	}

	n, err := repos.Tweets.CountByUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	followers, following, err := repos.Follows.Counts(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, followers)
	assert.Equal(t, 2, following)
}

func TestRun_SkipsPopulatedStore(t *testing.T) {
	seeder, repos := newSeeder()
	ctx := context.Background()

	_, err := repos.Users.Create(ctx, &domain.User{Username: "existing", Role: domain.RoleUser})
	require.NoError(t, err)

	require.NoError(t, seeder.Run(ctx))

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoad_RejectsUnknownAuthor(t *testing.T) {
	seeder, _ := newSeeder()
	err := seeder.Load(context.Background(), &Data{
		Tweets: []tweetFixture{{Author: "ghost", Content: "boo"}},
	})
	assert.ErrorContains(t, err, "unknown author")
}
