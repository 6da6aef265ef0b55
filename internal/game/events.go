package game

import (
	"time"

	"github.com/dkeye/Tune/internal/domain"
)

// Outbound notifications. Field names are part of the client contract,
// so they stay exactly as the web client expects them.

const (
	evRoomCreated     = "roomCreated"
	evJoinedRoom      = "joinedRoom"
	evPlayersUpdated  = "playersUpdated"
	evGameStarted     = "gameStarted"
	evTimerUpdate     = "timerUpdate"
	evHostChanged     = "hostChanged"
	evSongPlaying     = "songPlaying"
	evSongStopped     = "songStopped"
	evWinnerDeclared  = "winnerDeclared"
	evMessageReceived = "messageReceived"
)

type RoomCreated struct {
	Type     string          `json:"type"`
	RoomCode domain.RoomCode `json:"roomCode"`
	Players  []domain.Player `json:"players"`
}

type JoinedRoom struct {
	Type     string          `json:"type"`
	RoomCode domain.RoomCode `json:"roomCode"`
	IsHost   bool            `json:"isHost"`
	Players  []domain.Player `json:"players"`
}

type PlayersUpdated struct {
	Type    string          `json:"type"`
	Players []domain.Player `json:"players"`
}

type GameStarted struct {
	Type     string          `json:"type"`
	Songs    []domain.Track  `json:"songs"`
	Scores   map[string]int  `json:"scores"`
	HostName string          `json:"hostName"`
	Players  []domain.Player `json:"players"`
	Round    int             `json:"round"`
}

type TimerUpdate struct {
	Type          string `json:"type"`
	TimeRemaining int    `json:"timeRemaining"`
}

type HostChanged struct {
	Type        string          `json:"type"`
	NewHostID   domain.PlayerID `json:"newHostId"`
	NewHostName string          `json:"newHostName"`
	Players     []domain.Player `json:"players"`
	Round       int             `json:"round,omitempty"`
}

type SongPlaying struct {
	Type        string `json:"type"`
	SongPath    string `json:"songPath"`
	SongName    string `json:"songName"`
	HostName    string `json:"hostName"`
	StartOffset int    `json:"startOffset,omitempty"`
	Duration    int    `json:"duration"`
}

type SongStopped struct {
	Type string `json:"type"`
}

type WinnerDeclared struct {
	Type       string         `json:"type"`
	WinnerName string         `json:"winnerName"`
	SongName   string         `json:"songName"`
	Scores     map[string]int `json:"scores"`
}

type MessageReceived struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
