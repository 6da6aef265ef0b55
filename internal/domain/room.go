package domain

import "time"

// RoomCode is a short opaque identifier, normalized upper-case on lookup.
type RoomCode string

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseInProgress
)

// ChatCap bounds the per-room chat log; the oldest entry is evicted first.
const ChatCap = 100

// ChatMessage is immutable once appended.
type ChatMessage struct {
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RotationState tracks which players already hosted in the current
// rotation cycle. Used is an explicit set; Cursor indexes Players.
type RotationState struct {
	Used   map[PlayerID]struct{}
	Cursor int
}

// Room is the authoritative per-room state. Players keeps join order,
// which is meaningful: it drives the rotation fallback and the
// host-departure promotion rule.
type Room struct {
	Code         RoomCode
	Players      []*Player
	Phase        Phase
	CurrentRound int
	Scores       map[string]int
	Chat         []ChatMessage
	Rotation     RotationState
}

func NewRoom(code RoomCode, host *Player) *Room {
	host.IsHost = true
	return &Room{
		Code:         code,
		Players:      []*Player{host},
		Phase:        PhaseLobby,
		CurrentRound: 1,
		Scores:       make(map[string]int),
		Rotation:     RotationState{Used: make(map[PlayerID]struct{})},
	}
}

// Host returns the current host, or nil for an empty room.
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// HostIndex returns the host's position in join order, or -1.
func (r *Room) HostIndex() int {
	for i, p := range r.Players {
		if p.IsHost {
			return i
		}
	}
	return -1
}

func (r *Room) PlayerByID(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerByName(username string) *Player {
	for _, p := range r.Players {
		if p.Username == username {
			return p
		}
	}
	return nil
}

// RemovePlayer drops the player with the given id, preserving join order.
// Reports whether a player was removed and whether they held the host role.
func (r *Room) RemovePlayer(id PlayerID) (removed, wasHost bool) {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true, p.IsHost
		}
	}
	return false, false
}

// AppendChat appends a message, evicting the oldest past ChatCap.
func (r *Room) AppendChat(msg ChatMessage) {
	r.Chat = append(r.Chat, msg)
	if len(r.Chat) > ChatCap {
		r.Chat = r.Chat[1:]
	}
}
