package models

import "time"

// UserProfile is the validated identity behind a credential. It lives for one
// request and is never stored.
type UserProfile struct {
	Username    string    `json:"username"`
	Level       int       `json:"level"`
	ProfileURL  string    `json:"profile_url,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
	ElapsedDays int       `json:"elapsed_days"`
}
