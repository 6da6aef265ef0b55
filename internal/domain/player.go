// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// PlayerID is the connection-scoped identity handed in by the transport.
type PlayerID string

// Player is one seat in a room. Contact is an opaque passthrough
// the server never interprets.
type Player struct {
	ID       PlayerID `json:"id"`
	Username string   `json:"username"`
	Contact  string   `json:"contact,omitempty"`
	IsHost   bool     `json:"isHost"`
}

// NewPlayer is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewPlayer(id PlayerID, username, contact string) (*Player, error) {
	if len(username) == 0 {
		return nil, ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return nil, ErrUsernameTooLong
	}
	return &Player{ID: id, Username: username, Contact: contact}, nil
}
