package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	r.s.seq.user++
	created := cloneUser(user)
	created.ID = r.s.seq.user
	if created.CreatedAt.IsZero() {
		created.CreatedAt = r.s.now()
	}
	if created.UpdatedAt.IsZero() {
		created.UpdatedAt = created.CreatedAt
	}
	r.s.users[created.ID] = created
	return cloneUser(created), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []int64) (map[int64]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[int64]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	slices.SortFunc(out, func(a, b *domain.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id int64, role string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = r.s.now()
	return cloneUser(u), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id int64, p domain.Profile) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.DisplayName = p.DisplayName
	u.Bio = p.Bio
	u.Location = p.Location
	u.Website = p.Website
	u.Avatar = p.Avatar
	u.Banner = p.Banner
	u.UpdatedAt = r.s.now()
	return cloneUser(u), nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return u, nil
}
