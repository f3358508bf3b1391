package handler

import "time"

// ErrorResponse is the envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    authUserResponse `json:"user"`
}

// --- Tweets ---

type contentRequest struct {
	Content string `json:"content" form:"content"`
}

type authorResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Verified    bool   `json:"verified"`
}

// storedTweetResponse is a tweet exactly as stored, without derived fields.
type storedTweetResponse struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	Username        string     `json:"username"`
	Content         string     `json:"content"`
	Images          []string   `json:"images"`
	Timestamp       time.Time  `json:"timestamp"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	IsRetweet       bool       `json:"isRetweet"`
	OriginalTweetID *int64     `json:"originalTweetId"`
	ReplyToID       *int64     `json:"replyToId"`
}

type tweetResponse struct {
	storedTweetResponse
	Author        *authorResponse `json:"author"`
	LikesCount    int             `json:"likesCount"`
	RetweetsCount int             `json:"retweetsCount"`
	RepliesCount  int             `json:"repliesCount"`
	UserLiked     bool            `json:"userLiked"`
	UserRetweeted bool            `json:"userRetweeted"`
}

type tweetDetailResponse struct {
	tweetResponse
	Replies []replyResponse `json:"replies"`
}

type replyResponse struct {
	ID        int64           `json:"id"`
	TweetID   int64           `json:"tweetId"`
	UserID    int64           `json:"userId"`
	Username  string          `json:"username"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Author    *authorResponse `json:"author"`
}

type deleteTweetResponse struct {
	Message string              `json:"message"`
	Tweet   storedTweetResponse `json:"tweet"`
}

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type retweetResponse struct {
	Retweeted     bool `json:"retweeted"`
	RetweetsCount int  `json:"retweetsCount"`
}

// --- Users ---

type followResponse struct {
	Following      bool `json:"following"`
	FollowersCount int  `json:"followersCount"`
}

type userSummaryResponse struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Role           string    `json:"role"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	Avatar         string    `json:"avatar"`
	Banner         string    `json:"banner"`
	Verified       bool      `json:"verified"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	TweetsCount    int       `json:"tweetsCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type profileResponse struct {
	ID             int64           `json:"id"`
	Username       string          `json:"username"`
	DisplayName    string          `json:"displayName"`
	Bio            string          `json:"bio"`
	Location       string          `json:"location"`
	Website        string          `json:"website"`
	Avatar         string          `json:"avatar"`
	Banner         string          `json:"banner"`
	Verified       bool            `json:"verified"`
	FollowersCount int             `json:"followersCount"`
	FollowingCount int             `json:"followingCount"`
	TweetsCount    int             `json:"tweetsCount"`
	CreatedAt      time.Time       `json:"createdAt"`
	IsFollowing    bool            `json:"isFollowing"`
	Tweets         []tweetResponse `json:"tweets"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type roleUpdateResponse struct {
	Message string              `json:"message"`
	User    userSummaryResponse `json:"user"`
}

type deletedUserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type deleteUserResponse struct {
	Message string              `json:"message"`
	User    deletedUserResponse `json:"user"`
}

type profileRequest struct {
	DisplayName string `json:"displayName" validate:"max=50"`
	Bio         string `json:"bio"         validate:"max=160"`
	Location    string `json:"location"    validate:"max=30"`
	Website     string `json:"website"     validate:"omitempty,url,max=100"`
	Avatar      string `json:"avatar"      validate:"omitempty,url"`
	Banner      string `json:"banner"      validate:"omitempty,url"`
}
