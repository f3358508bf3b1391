package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

var errUploadsDisabled = domain.Invalid("image uploads are not enabled")

type TweetService struct {
	tweets      ports.TweetRepository
	engagement  ports.EngagementRepository
	enrich      enricher
	images      ports.ImageStore
	maxImage    int64
	idempotency ports.IdempotencyStore
	cleanup     ports.CleanupQueue
	logger      zerolog.Logger
	now         func() time.Time
}

// TweetOption configures optional collaborators of TweetService.
type TweetOption func(*TweetService)

// WithImageStore enables image uploads. maxBytes caps each file; zero
// means no cap.
func WithImageStore(store ports.ImageStore, maxBytes int64) TweetOption {
	return func(s *TweetService) {
		s.images = store
		s.maxImage = maxBytes
	}
}

// WithIdempotency enables Idempotency-Key handling on Create.
func WithIdempotency(store ports.IdempotencyStore) TweetOption {
	return func(s *TweetService) { s.idempotency = store }
}

// WithImageCleanup schedules removal of a deleted tweet's images.
func WithImageCleanup(queue ports.CleanupQueue) TweetOption {
	return func(s *TweetService) { s.cleanup = queue }
}

func NewTweetService(
	tweets ports.TweetRepository,
	users ports.UserRepository,
	engagement ports.EngagementRepository,
	logger zerolog.Logger,
	opts ...TweetOption,
) *TweetService {
	s := &TweetService{
		tweets:     tweets,
		engagement: engagement,
		enrich:     enricher{users: users, engagement: engagement},
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TweetService) List(ctx context.Context, viewerID int64) ([]ports.TweetView, error) {
	tweets, err := s.tweets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return s.enrich.tweets(ctx, tweets, viewerID)
}

// Get returns the tweet with its replies attached.
func (s *TweetService) Get(ctx context.Context, id, viewerID int64) (*ports.TweetView, error) {
	tweet, err := s.tweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.enrich.tweet(ctx, tweet, viewerID)
	if err != nil {
		return nil, err
	}

	replies, err := s.engagement.ListReplies(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	view.Replies, err = s.enrich.replies(ctx, replies)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *TweetService) validateImages(images []ports.ImageInput) error {
	if len(images) == 0 {
		return nil
	}
	if s.images == nil {
		return errUploadsDisabled
	}
	if len(images) > domain.MaxTweetImages {
		return domain.ErrTooManyImages
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return domain.ErrInvalidImage
		}
		if s.maxImage > 0 && img.Size > s.maxImage {
			return domain.ErrInvalidImage
		}
	}
	return nil
}

// Create publishes a tweet. When an idempotency key is supplied and a store is
// configured, a repeated key returns the tweet produced by the first request.
func (s *TweetService) Create(ctx context.Context, input ports.CreateTweetInput) (*ports.CreateTweetResult, error) {
	content, err := domain.NormalizeContent(input.Content)
	if err != nil {
		return nil, err
	}
	if err := s.validateImages(input.Images); err != nil {
		return nil, err
	}

	var key string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		key = fmt.Sprintf("%d:%s", input.AuthorID, input.IdempotencyKey)
		existingID, claimed, err := s.idempotency.Claim(ctx, key)
		if err != nil {
			return nil, err
		}
		if !claimed {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("tweet_id", existingID).Msg("idempotent replay")
			view, err := s.Get(ctx, existingID, input.AuthorID)
			if err != nil {
				return nil, err
			}
			view.Replies = nil
			return &ports.CreateTweetResult{Tweet: *view, Replayed: true}, nil
		}
	}

	tweet, err := s.publish(ctx, input, content)
	if err != nil {
		if key != "" {
			if rerr := s.idempotency.Release(ctx, key); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if key != "" {
		if err := s.idempotency.Complete(ctx, key, tweet.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to record idempotency key")
		}
	}

	s.logger.Info().Int64("tweet_id", tweet.ID).Int64("user_id", tweet.UserID).Int("images", len(tweet.Images)).Msg("tweet created")

	view, err := s.enrich.tweet(ctx, tweet, input.AuthorID)
	if err != nil {
		return nil, err
	}
	return &ports.CreateTweetResult{Tweet: *view}, nil
}

func (s *TweetService) publish(ctx context.Context, input ports.CreateTweetInput, content string) (*domain.Tweet, error) {
	urls := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		url, err := s.images.Save(ctx, img.Filename, img.Body)
		if err != nil {
			s.discard(urls)
			return nil, fmt.Errorf("save image: %w", err)
		}
		urls = append(urls, url)
	}

	tweet, err := s.tweets.Create(ctx, &domain.Tweet{
		UserID:    input.AuthorID,
		Username:  input.Username,
		Content:   content,
		Images:    urls,
		Timestamp: s.now(),
	})
	if err != nil {
		s.discard(urls)
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

// discard schedules removal of images saved for a tweet that was never
// stored.
func (s *TweetService) discard(urls []string) {
	if s.cleanup == nil || len(urls) == 0 {
		return
	}
	s.logger.Warn().Strs("images", urls).Msg("discarding images of unpublished tweet")
	s.cleanup.Enqueue(urls)
}

func (s *TweetService) Update(ctx context.Context, id, viewerID int64, content string) (*ports.TweetView, error) {
	content, err := domain.NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweets.UpdateContent(ctx, id, content, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("tweet_id", id).Int64("editor_id", viewerID).Msg("tweet updated")
	return s.enrich.tweet(ctx, tweet, viewerID)
}

// Delete removes the tweet and all engagement that references it.
func (s *TweetService) Delete(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweet, err := s.tweets.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("tweet_id", id).Msg("tweet deleted")
	if s.cleanup != nil && len(tweet.Images) > 0 {
		s.cleanup.Enqueue(tweet.Images)
	}
	return tweet, nil
}

func (s *TweetService) Toggle(ctx context.Context, kind domain.EngagementKind, id, userID int64) (*ports.ToggleResult, error) {
	active, count, err := s.engagement.Toggle(ctx, kind, id, userID)
	if err != nil {
		return nil, err
	}
	return &ports.ToggleResult{Active: active, Count: count}, nil
}

// Reply answers an existing tweet. A missing tweet is reported before the
// content is validated.
func (s *TweetService) Reply(ctx context.Context, id, userID int64, username, content string) (*ports.ReplyView, error) {
	if _, err := s.tweets.FindByID(ctx, id); err != nil {
		return nil, err
	}
	content, err := domain.NormalizeContent(content)
	if err != nil {
		return nil, err
	}

	reply, err := s.engagement.AddReply(ctx, &domain.Reply{
		TweetID:   id,
		UserID:    userID,
		Username:  username,
		Content:   content,
		Timestamp: s.now(),
	})
	if err != nil {
		return nil, err
	}

	views, err := s.enrich.replies(ctx, []*domain.Reply{reply})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TweetService) OwnerOf(ctx context.Context, id int64) (int64, bool, error) {
	tweet, err := s.tweets.FindByID(ctx, id)
	if errors.Is(err, domain.ErrTweetNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return tweet.UserID, true, nil
}
