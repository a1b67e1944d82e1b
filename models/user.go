package models

import "time"

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RosterEntry is a user's membership in one chat together with the
// chat-scoped flags and rating seed. One user can appear in several chats
// with independent entries.
type RosterEntry struct {
	ChatID        int64  `json:"chat_id"`
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	IsActive      bool   `json:"is_active"`
	IsHidden      bool   `json:"is_hidden"`
	IsAdmin       bool   `json:"is_admin"`
	InitialRating int    `json:"initial_rating"`
	InitialGames  int    `json:"initial_games"`
}

type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
