package memory

import (
	"context"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type FollowRepository struct {
	s *Store
}

func NewFollowRepository(s *Store) *FollowRepository {
	return &FollowRepository{s: s}
}

func (r *FollowRepository) Toggle(_ context.Context, followerID, followingID int64) (bool, int, error) {
	if followerID == followingID {
		return false, 0, domain.ErrSelfFollow
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[followingID]; !ok {
		return false, 0, domain.ErrUserNotFound
	}

	key := pair{subject: followingID, actor: followerID}
	following := false
	if _, ok := r.s.follows[key]; ok {
		delete(r.s.follows, key)
	} else {
		r.s.seq.follow++
		r.s.follows[key] = edge{id: r.s.seq.follow, createdAt: r.s.now()}
		following = true
	}
	return following, countSubject(r.s.follows, followingID), nil
}

func (r *FollowRepository) Counts(_ context.Context, userID int64) (int, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return countSubject(r.s.follows, userID), countActor(r.s.follows, userID), nil
}

func (r *FollowRepository) IsFollowing(_ context.Context, followerID, followingID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.follows[pair{subject: followingID, actor: followerID}]
	return ok, nil
}
