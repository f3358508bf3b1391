package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxContentLength = 280
	MaxTweetImages   = 4
)

// Tweet is a post. Engagement counts are never stored on it.
type Tweet struct {
	ID              int64
	UserID          int64
	Username        string
	Content         string
	Images          []string
	Timestamp       time.Time
	UpdatedAt       *time.Time
	IsRetweet       bool
	OriginalTweetID *int64
	ReplyToID       *int64
}

// Reply is a flat comment on a tweet.
type Reply struct {
	ID        int64
	TweetID   int64
	UserID    int64
	Username  string
	Content   string
	Timestamp time.Time
}

// EngagementKind names the per-user toggles on a tweet.
type EngagementKind string

const (
	Like    EngagementKind = "like"
	Retweet EngagementKind = "retweet"
)

// Engagement is the derived state of a tweet as seen by one viewer.
type Engagement struct {
	Likes     int
	Retweets  int
	Replies   int
	Liked     bool
	Retweeted bool
}

// NormalizeContent trims content and checks it against the length limit,
// which is counted in code points after trimming.
func NormalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}
