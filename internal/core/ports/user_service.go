package ports

import (
	"context"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// UserSummary is an account with live follower, following and tweet counts.
type UserSummary struct {
	User      *domain.User
	Followers int
	Following int
	Tweets    int
}

// ProfileView is the public profile page of a user.
type ProfileView struct {
	UserSummary
	IsFollowing bool
	TweetList   []TweetView
}

// UserService defines the account and social-graph use cases.
type UserService interface {
	List(ctx context.Context) ([]UserSummary, error)
	Get(ctx context.Context, id int64) (*UserSummary, error)
	Profile(ctx context.Context, username string, viewerID int64) (*ProfileView, error)
	ToggleFollow(ctx context.Context, followerID, targetID int64) (*ToggleResult, error)
	UpdateRole(ctx context.Context, actorID, targetID int64, role string) (*UserSummary, error)
	Delete(ctx context.Context, actorID, targetID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, profile domain.Profile) (*UserSummary, error)
}
