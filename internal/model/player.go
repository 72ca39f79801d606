package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player on the roster
type PlayerID string

// Player is a club member who can sign in.
// Administrators are players with IsAdmin set.
type Player struct {
	ID           PlayerID  `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"` // bcrypt hash, never plaintext
	Position     string    `json:"position"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeEmail lower-cases and trims an email address for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MatchesIdentifier reports whether identifier equals the player's email or
// username, ignoring case
func (p *Player) MatchesIdentifier(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}
	return strings.EqualFold(p.Email, identifier) || strings.EqualFold(p.Username, identifier)
}
