package ports

import (
	"context"
	"io"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// AuthorSummary is the public face of a tweet or reply author.
type AuthorSummary struct {
	ID          int64
	Username    string
	DisplayName string
	Avatar      string
	Verified    bool
}

// TweetView is a tweet enriched with its author and live engagement.
// Author is nil when the author account no longer exists.
type TweetView struct {
	Tweet      *domain.Tweet
	Author     *AuthorSummary
	Engagement domain.Engagement
	// Replies is only populated by the single-tweet read.
	Replies []ReplyView
}

// ReplyView is a reply enriched with its author.
type ReplyView struct {
	Reply  *domain.Reply
	Author *AuthorSummary
}

// ImageInput is one uploaded image file.
type ImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateTweetInput carries everything needed to publish a tweet.
type CreateTweetInput struct {
	AuthorID       int64
	Username       string
	Content        string
	Images         []ImageInput
	IdempotencyKey string
}

// CreateTweetResult reports the created tweet. Replayed is true when an
// Idempotency-Key matched an earlier request.
type CreateTweetResult struct {
	Tweet    TweetView
	Replayed bool
}

// ToggleResult is the new state of a toggle and the recomputed count.
type ToggleResult struct {
	Active bool
	Count  int
}

// TweetService defines the tweet use cases. viewerID is zero for
// anonymous requests.
type TweetService interface {
	List(ctx context.Context, viewerID int64) ([]TweetView, error)
	Get(ctx context.Context, id, viewerID int64) (*TweetView, error)
	Create(ctx context.Context, input CreateTweetInput) (*CreateTweetResult, error)
	Update(ctx context.Context, id, viewerID int64, content string) (*TweetView, error)
	Delete(ctx context.Context, id int64) (*domain.Tweet, error)
	Toggle(ctx context.Context, kind domain.EngagementKind, id, userID int64) (*ToggleResult, error)
	Reply(ctx context.Context, id, userID int64, username, content string) (*ReplyView, error)
	// OwnerOf resolves the author of a tweet; found is false when the tweet
	// does not exist.
	OwnerOf(ctx context.Context, id int64) (ownerID int64, found bool, err error)
}
