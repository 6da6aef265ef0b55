package game

import "errors"

// Caller-facing rejections. All of them leave room state untouched;
// the transport unicasts them back to the originating connection.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrUsernameTaken      = errors.New("username already taken in this room")
	ErrInsufficientPlayer = errors.New("need at least 2 players to start")
	ErrNotHost            = errors.New("only host can do this")
	ErrNoTracksAvailable  = errors.New("no songs found in songs folder")

	// ErrCodeExhausted is createRoom's only failure mode: code
	// generation kept colliding with live rooms.
	ErrCodeExhausted = errors.New("could not generate an unused room code")

	ErrNotMember = errors.New("player is not in this room")
)
