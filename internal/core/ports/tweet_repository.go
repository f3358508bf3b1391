package ports

import (
	"context"
	"time"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// TweetRepository persists tweets.
type TweetRepository interface {
	// Create assigns a fresh id and increments the author's stored tweet count.
	Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error)
	FindByID(ctx context.Context, id int64) (*domain.Tweet, error)
	// List returns every tweet, newest first.
	List(ctx context.Context) ([]*domain.Tweet, error)
	// ListByUser returns the user's tweets, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Tweet, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	UpdateContent(ctx context.Context, id int64, content string, at time.Time) (*domain.Tweet, error)
	// Delete removes the tweet together with its likes, retweets and replies,
	// and decrements the author's stored tweet count (never below zero).
	Delete(ctx context.Context, id int64) (*domain.Tweet, error)
}

// EngagementRepository stores likes, retweets and replies.
type EngagementRepository interface {
	// Toggle flips the (tweet, user) pair for kind as one atomic step and
	// returns the new state plus the recomputed count for that kind.
	// Returns domain.ErrTweetNotFound when the tweet does not exist.
	Toggle(ctx context.Context, kind domain.EngagementKind, tweetID, userID int64) (active bool, count int, err error)
	// Stats derives engagement for each tweet as seen by viewerID.
	// A zero viewerID is anonymous.
	Stats(ctx context.Context, tweetIDs []int64, viewerID int64) (map[int64]domain.Engagement, error)
	// AddReply returns domain.ErrTweetNotFound when the tweet does not exist.
	AddReply(ctx context.Context, reply *domain.Reply) (*domain.Reply, error)
	// ListReplies returns replies oldest first.
	ListReplies(ctx context.Context, tweetID int64) ([]*domain.Reply, error)
}
