package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
	"github.com/twittoo/twittoo-api/internal/pkg/sanitize"
)

type UserService struct {
	users   ports.UserRepository
	tweets  ports.TweetRepository
	follows ports.FollowRepository
	enrich  enricher
	logger  zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	tweets ports.TweetRepository,
	follows ports.FollowRepository,
	engagement ports.EngagementRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:   users,
		tweets:  tweets,
		follows: follows,
		enrich:  enricher{users: users, engagement: engagement},
		logger:  logger,
	}
}

// summarize recomputes the counters from the relationship collections rather
// than trusting the stored tweet count.
func (s *UserService) summarize(ctx context.Context, u *domain.User) (*ports.UserSummary, error) {
	followers, following, err := s.follows.Counts(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("follow counts: %w", err)
	}
	tweets, err := s.tweets.CountByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("tweet count: %w", err)
	}
	return &ports.UserSummary{User: u, Followers: followers, Following: following, Tweets: tweets}, nil
}

func (s *UserService) List(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		sum, err := s.summarize(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, *sum)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*ports.UserSummary, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, u)
}

func (s *UserService) Profile(ctx context.Context, username string, viewerID int64) (*ports.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	sum, err := s.summarize(ctx, u)
	if err != nil {
		return nil, err
	}

	view := &ports.ProfileView{UserSummary: *sum}
	if viewerID != 0 {
		view.IsFollowing, err = s.follows.IsFollowing(ctx, viewerID, u.ID)
		if err != nil {
			return nil, fmt.Errorf("is following: %w", err)
		}
	}

	tweets, err := s.tweets.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list user tweets: %w", err)
	}
	view.TweetList, err = s.enrich.tweets(ctx, tweets, viewerID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *UserService) ToggleFollow(ctx context.Context, followerID, targetID int64) (*ports.ToggleResult, error) {
	if followerID == targetID {
		return nil, domain.ErrSelfFollow
	}
	following, followers, err := s.follows.Toggle(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	return &ports.ToggleResult{Active: following, Count: followers}, nil
}

// UpdateRole checks the role first, then that the target exists, then that
// the actor is not demoting or promoting themselves.
func (s *UserService) UpdateRole(ctx context.Context, actorID, targetID int64, role string) (*ports.UserSummary, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, domain.ErrSelfRoleChange
	}

	u, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("actor_id", actorID).Int64("user_id", targetID).Str("role", role).Msg("user role updated")
	return s.summarize(ctx, u)
}

// Delete removes the account only. Tweets, replies and relationship rows stay
// behind and render with a null author.
func (s *UserService) Delete(ctx context.Context, actorID, targetID int64) (*domain.User, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfDelete
	}
	u, err := s.users.Delete(ctx, targetID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("actor_id", actorID).Int64("user_id", targetID).Msg("user deleted")
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, p domain.Profile) (*ports.UserSummary, error) {
	clean := domain.Profile{
		DisplayName: sanitize.Text(p.DisplayName),
		Bio:         sanitize.Text(p.Bio),
		Location:    sanitize.Text(p.Location),
		Website:     sanitize.Text(p.Website),
		Avatar:      sanitize.Text(p.Avatar),
		Banner:      sanitize.Text(p.Banner),
	}
	u, err := s.users.UpdateProfile(ctx, userID, clean)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, u)
}
