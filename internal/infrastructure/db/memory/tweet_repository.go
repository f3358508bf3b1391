package memory

import (
	"context"
	"time"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type TweetRepository struct {
	s *Store
}

func NewTweetRepository(s *Store) *TweetRepository {
	return &TweetRepository{s: s}
}

func (r *TweetRepository) Create(_ context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.seq.tweet++
	created := cloneTweet(tweet)
	created.ID = r.s.seq.tweet
	if created.Timestamp.IsZero() {
		created.Timestamp = r.s.now()
	}
	if created.Images == nil {
		created.Images = []string{}
	}
	r.s.tweets[created.ID] = created

	if u, ok := r.s.users[created.UserID]; ok {
		u.TweetsCount++
	}
	return cloneTweet(created), nil
}

func (r *TweetRepository) FindByID(_ context.Context, id int64) (*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	return cloneTweet(t), nil
}

func (r *TweetRepository) List(_ context.Context) ([]*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Tweet, 0, len(r.s.tweets))
	for _, t := range r.s.tweets {
		out = append(out, cloneTweet(t))
	}
	sortTweets(out)
	return out, nil
}

func (r *TweetRepository) ListByUser(_ context.Context, userID int64) ([]*domain.Tweet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Tweet
	for _, t := range r.s.tweets {
		if t.UserID == userID {
			out = append(out, cloneTweet(t))
		}
	}
	sortTweets(out)
	return out, nil
}

func (r *TweetRepository) CountByUser(_ context.Context, userID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, t := range r.s.tweets {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *TweetRepository) UpdateContent(_ context.Context, id int64, content string, at time.Time) (*domain.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	t.Content = content
	t.UpdatedAt = &at
	return cloneTweet(t), nil
}

func (r *TweetRepository) Delete(_ context.Context, id int64) (*domain.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	delete(r.s.tweets, id)

	if u, ok := r.s.users[t.UserID]; ok && u.TweetsCount > 0 {
		u.TweetsCount--
	}

	deleteSubject(r.s.likes, id)
	deleteSubject(r.s.retweets, id)
	for rid, reply := range r.s.replies {
		if reply.TweetID == id {
			delete(r.s.replies, rid)
		}
	}

	return t, nil
}
