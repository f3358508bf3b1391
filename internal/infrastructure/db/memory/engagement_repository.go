package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type EngagementRepository struct {
	s *Store
}

func NewEngagementRepository(s *Store) *EngagementRepository {
	return &EngagementRepository{s: s}
}

func (r *EngagementRepository) Toggle(_ context.Context, kind domain.EngagementKind, tweetID, userID int64) (bool, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tweets[tweetID]; !ok {
		return false, 0, domain.ErrTweetNotFound
	}

	rows := r.s.engagements(kind)
	key := pair{subject: tweetID, actor: userID}
	active := false
	if _, ok := rows[key]; ok {
		delete(rows, key)
	} else {
		id := r.nextID(kind)
		rows[key] = edge{id: id, createdAt: r.s.now()}
		active = true
	}
	return active, countSubject(rows, tweetID), nil
}

func (r *EngagementRepository) nextID(kind domain.EngagementKind) int64 {
	if kind == domain.Retweet {
		r.s.seq.retweet++
		return r.s.seq.retweet
	}
	r.s.seq.like++
	return r.s.seq.like
}

func (r *EngagementRepository) Stats(_ context.Context, tweetIDs []int64, viewerID int64) (map[int64]domain.Engagement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[int64]domain.Engagement, len(tweetIDs))
	for _, id := range tweetIDs {
		out[id] = domain.Engagement{}
	}
	for p := range r.s.likes {
		if e, ok := out[p.subject]; ok {
			e.Likes++
			if viewerID != 0 && p.actor == viewerID {
				e.Liked = true
			}
			out[p.subject] = e
		}
	}
	for p := range r.s.retweets {
		if e, ok := out[p.subject]; ok {
			e.Retweets++
			if viewerID != 0 && p.actor == viewerID {
				e.Retweeted = true
			}
			out[p.subject] = e
		}
	}
	for _, reply := range r.s.replies {
		if e, ok := out[reply.TweetID]; ok {
			e.Replies++
			out[reply.TweetID] = e
		}
	}
	return out, nil
}

func (r *EngagementRepository) AddReply(_ context.Context, reply *domain.Reply) (*domain.Reply, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tweets[reply.TweetID]; !ok {
		return nil, domain.ErrTweetNotFound
	}

	r.s.seq.reply++
	created := cloneReply(reply)
	created.ID = r.s.seq.reply
	if created.Timestamp.IsZero() {
		created.Timestamp = r.s.now()
	}
	r.s.replies[created.ID] = created
	return cloneReply(created), nil
}

func (r *EngagementRepository) ListReplies(_ context.Context, tweetID int64) ([]*domain.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Reply
	for _, reply := range r.s.replies {
		if reply.TweetID == tweetID {
			out = append(out, cloneReply(reply))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Reply) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
