package service

import (
	"context"
	"fmt"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

// enricher attaches authors and live engagement to stored rows.
type enricher struct {
	users      ports.UserRepository
	engagement ports.EngagementRepository
}

func authorSummary(u *domain.User) *ports.AuthorSummary {
	if u == nil {
		return nil
	}
	return &ports.AuthorSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Verified:    u.Verified,
	}
}

func (e enricher) tweets(ctx context.Context, tweets []*domain.Tweet, viewerID int64) ([]ports.TweetView, error) {
	if len(tweets) == 0 {
		return []ports.TweetView{}, nil
	}

	ids := make([]int64, 0, len(tweets))
	authorIDs := make([]int64, 0, len(tweets))
	for _, t := range tweets {
		ids = append(ids, t.ID)
		authorIDs = append(authorIDs, t.UserID)
	}

	authors, err := e.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	stats, err := e.engagement.Stats(ctx, ids, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load engagement: %w", err)
	}

	views := make([]ports.TweetView, 0, len(tweets))
	for _, t := range tweets {
		views = append(views, ports.TweetView{
			Tweet:      t,
			Author:     authorSummary(authors[t.UserID]),
			Engagement: stats[t.ID],
		})
	}
	return views, nil
}

func (e enricher) tweet(ctx context.Context, t *domain.Tweet, viewerID int64) (*ports.TweetView, error) {
	views, err := e.tweets(ctx, []*domain.Tweet{t}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (e enricher) replies(ctx context.Context, replies []*domain.Reply) ([]ports.ReplyView, error) {
	views := make([]ports.ReplyView, 0, len(replies))
	if len(replies) == 0 {
		return views, nil
	}

	authorIDs := make([]int64, 0, len(replies))
	for _, r := range replies {
		authorIDs = append(authorIDs, r.UserID)
	}
	authors, err := e.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load reply authors: %w", err)
	}

	for _, r := range replies {
		views = append(views, ports.ReplyView{Reply: r, Author: authorSummary(authors[r.UserID])})
	}
	return views, nil
}
