package models

import "time"

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture"`
	FriendCode     string    `json:"friend_code"`
	CreatedAt      time.Time `json:"created_at"`
}

// Friendship is one directed edge of a symmetric friendship. Stores keep
// both directions.
type Friendship struct {
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
	Score          int    `json:"score"` // 0..100
	IsMe           bool   `json:"is_me"`
}

// FriendResult is returned when a friend code is redeemed.
type FriendResult struct {
	Status     string `json:"status"`
	FriendName string `json:"friend_name"`
}
