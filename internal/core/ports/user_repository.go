package ports

import (
	"context"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// UserRepository persists accounts. Identifiers are assigned by the store.
type UserRepository interface {
	// Create assigns a fresh id. Returns domain.ErrUserExists when the
	// username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs returns the users that still exist; missing ids are absent
	// from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.User, error)
	// Delete removes only the account row. Authored content is left in place.
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

// FollowRepository stores follower edges.
type FollowRepository interface {
	// Toggle removes the edge when present and inserts it otherwise, as one
	// atomic step. It returns the new state and the target's follower count.
	Toggle(ctx context.Context, followerID, followingID int64) (following bool, followers int, err error)
	Counts(ctx context.Context, userID int64) (followers, following int, err error)
	IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error)
}
