package handler

import (
	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

// --- Service output → Response ---

func toAuthResponse(message string, res *ports.AuthResult) authResponse {
	return authResponse{
		Message: message,
		Token:   res.Token,
		User: authUserResponse{
			ID:       res.User.ID,
			Username: res.User.Username,
			Role:     res.User.Role,
		},
	}
}

func toAuthorResponse(a *ports.AuthorSummary) *authorResponse {
	if a == nil {
		return nil
	}
	return &authorResponse{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Avatar:      a.Avatar,
		Verified:    a.Verified,
	}
}

func toStoredTweetResponse(t *domain.Tweet) storedTweetResponse {
	images := t.Images
	if images == nil {
		images = []string{}
	}
	return storedTweetResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Username:        t.Username,
		Content:         t.Content,
		Images:          images,
		Timestamp:       t.Timestamp,
		UpdatedAt:       t.UpdatedAt,
		IsRetweet:       t.IsRetweet,
		OriginalTweetID: t.OriginalTweetID,
		ReplyToID:       t.ReplyToID,
	}
}

func toTweetResponse(v ports.TweetView) tweetResponse {
	return tweetResponse{
		storedTweetResponse: toStoredTweetResponse(v.Tweet),
		Author:              toAuthorResponse(v.Author),
		LikesCount:          v.Engagement.Likes,
		RetweetsCount:       v.Engagement.Retweets,
		RepliesCount:        v.Engagement.Replies,
		UserLiked:           v.Engagement.Liked,
		UserRetweeted:       v.Engagement.Retweeted,
	}
}

func toTweetResponses(views []ports.TweetView) []tweetResponse {
	out := make([]tweetResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTweetResponse(v))
	}
	return out
}

func toReplyResponse(v ports.ReplyView) replyResponse {
	return replyResponse{
		ID:        v.Reply.ID,
		TweetID:   v.Reply.TweetID,
		UserID:    v.Reply.UserID,
		Username:  v.Reply.Username,
		Content:   v.Reply.Content,
		Timestamp: v.Reply.Timestamp,
		Author:    toAuthorResponse(v.Author),
	}
}

func toTweetDetailResponse(v *ports.TweetView) tweetDetailResponse {
	replies := make([]replyResponse, 0, len(v.Replies))
	for _, r := range v.Replies {
		replies = append(replies, toReplyResponse(r))
	}
	return tweetDetailResponse{tweetResponse: toTweetResponse(*v), Replies: replies}
}

func toUserSummaryResponse(s ports.UserSummary) userSummaryResponse {
	u := s.User
	return userSummaryResponse{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		Bio:            u.Bio,
		Location:       u.Location,
		Website:        u.Website,
		Avatar:         u.Avatar,
		Banner:         u.Banner,
		Verified:       u.Verified,
		FollowersCount: s.Followers,
		FollowingCount: s.Following,
		TweetsCount:    s.Tweets,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toProfileResponse(p *ports.ProfileView) profileResponse {
	u := p.User
	return profileResponse{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		Location:       u.Location,
		Website:        u.Website,
		Avatar:         u.Avatar,
		Banner:         u.Banner,
		Verified:       u.Verified,
		FollowersCount: p.Followers,
		FollowingCount: p.Following,
		TweetsCount:    p.Tweets,
		CreatedAt:      u.CreatedAt,
		IsFollowing:    p.IsFollowing,
		Tweets:         toTweetResponses(p.TweetList),
	}
}

// --- Request → Service input ---

func toProfile(req profileRequest) domain.Profile {
	return domain.Profile{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		Avatar:      req.Avatar,
		Banner:      req.Banner,
	}
}
