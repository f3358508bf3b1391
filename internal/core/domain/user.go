package domain

import "time"

const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// User models an account. TweetsCount is maintained on tweet create/delete
// but responses always recompute it from the tweets collection.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	DisplayName  string
	Bio          string
	Location     string
	Website      string
	Avatar       string
	Banner       string
	Verified     bool
	TweetsCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the user-editable presentation fields.
type Profile struct {
	DisplayName string
	Bio         string
	Location    string
	Website     string
	Avatar      string
	Banner      string
}

// Follow is a directed follower -> following edge.
type Follow struct {
	ID          int64
	FollowerID  int64
	FollowingID int64
	CreatedAt   time.Time
}
