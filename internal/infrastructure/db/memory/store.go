// Package memory is the process-local entity store. All collections share one
// lock, so every mutation (toggles and cascades included) is a single
// critical section.
package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type pair struct {
	subject int64
	actor   int64
}

type edge struct {
	id        int64
	createdAt time.Time
}

type sequences struct {
	user, tweet, like, retweet, follow, reply int64
}

// Store holds every collection. Repositories are thin views over it.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*domain.User
	tweets   map[int64]*domain.Tweet
	replies  map[int64]*domain.Reply
	likes    map[pair]edge // (tweet, user)
	retweets map[pair]edge // (tweet, user)
	follows  map[pair]edge // (following, follower)

	seq sequences
	now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[int64]*domain.User),
		tweets:   make(map[int64]*domain.Tweet),
		replies:  make(map[int64]*domain.Reply),
		likes:    make(map[pair]edge),
		retweets: make(map[pair]edge),
		follows:  make(map[pair]edge),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) engagements(kind domain.EngagementKind) map[pair]edge {
	if kind == domain.Retweet {
		return s.retweets
	}
	return s.likes
}

func countSubject(m map[pair]edge, subject int64) int {
	n := 0
	for p := range m {
		if p.subject == subject {
			n++
		}
	}
	return n
}

func countActor(m map[pair]edge, actor int64) int {
	n := 0
	for p := range m {
		if p.actor == actor {
			n++
		}
	}
	return n
}

func deleteSubject(m map[pair]edge, subject int64) {
	for p := range m {
		if p.subject == subject {
			delete(m, p)
		}
	}
}

func newestFirst(a, b *domain.Tweet) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func sortTweets(ts []*domain.Tweet) {
	slices.SortFunc(ts, newestFirst)
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneTweet(t *domain.Tweet) *domain.Tweet {
	if t == nil {
		return nil
	}
	c := *t
	c.Images = slices.Clone(t.Images)
	if t.UpdatedAt != nil {
		at := *t.UpdatedAt
		c.UpdatedAt = &at
	}
	return &c
}

func cloneReply(r *domain.Reply) *domain.Reply {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
