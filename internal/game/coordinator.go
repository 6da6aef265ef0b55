package game

import (
	"fmt"
	"time"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

// Broadcaster is the transport's room-scoped fan-out primitive.
// Implementations must not block and must not call back into the
// coordinator: broadcasts happen under the room lock.
type Broadcaster interface {
	BroadcastRoom(code domain.RoomCode, v any)
}

// Catalog lists the playable tracks. Only consulted to validate
// Start; the coordinator never touches audio itself.
type Catalog interface {
	Tracks() ([]domain.Track, error)
}

type Options struct {
	// RoundSeconds is the round timer duration.
	RoundSeconds int
	// ClipSeconds is advisory: carried in SongPlaying, never enforced.
	ClipSeconds int
	// WinRotateSeconds delays the automatic host rotation after a
	// declared winner. Zero disables the auto-rotate.
	WinRotateSeconds int
}

func DefaultOptions() Options {
	return Options{RoundSeconds: 180, ClipSeconds: 30, WinRotateSeconds: 3}
}

// Coordinator validates and applies every external event against a
// room. Each event runs entirely under that room's lock: it either
// completes fully or fails without mutation, and events on one room
// are observed in arrival order.
type Coordinator struct {
	Registry *Registry
	Policy   RotationPolicy
	Catalog  Catalog
	Tickers  TickerFactory
	Out      Broadcaster
	Opts     Options
}

func NewCoordinator(reg *Registry, cat Catalog, tf TickerFactory, out Broadcaster, opts Options) *Coordinator {
	if opts.RoundSeconds <= 0 {
		opts.RoundSeconds = 180
	}
	if opts.ClipSeconds <= 0 {
		opts.ClipSeconds = 30
	}
	return &Coordinator{
		Registry: reg,
		Catalog:  cat,
		Tickers:  tf,
		Out:      out,
		Opts:     opts,
	}
}

func (c *Coordinator) withRoom(code domain.RoomCode, fn func(e *roomEntry) error) error {
	e, ok := c.Registry.get(code)
	if !ok {
		return ErrRoomNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrRoomNotFound
	}
	return fn(e)
}

// requireHost gates every control action: possession of the host flag
// is the only trust boundary, checked per event, never cached.
func requireHost(e *roomEntry, id domain.PlayerID) error {
	p := e.room.PlayerByID(id)
	if p == nil || !p.IsHost {
		return ErrNotHost
	}
	return nil
}

func snapshotPlayers(r *domain.Room) []domain.Player {
	out := make([]domain.Player, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, *p)
	}
	return out
}

func snapshotScores(r *domain.Room) map[string]int {
	out := make(map[string]int, len(r.Scores))
	for k, v := range r.Scores {
		out[k] = v
	}
	return out
}

// CreateRoom registers a fresh room with the caller as host.
func (c *Coordinator) CreateRoom(id domain.PlayerID, username, contact string) (RoomCreated, error) {
	host, err := domain.NewPlayer(id, username, contact)
	if err != nil {
		return RoomCreated{}, err
	}
	e, err := c.Registry.create(host)
	if err != nil {
		return RoomCreated{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return RoomCreated{
		Type:     evRoomCreated,
		RoomCode: e.room.Code,
		Players:  snapshotPlayers(e.room),
	}, nil
}

// Join appends a player to a lobby-phase room.
func (c *Coordinator) Join(code domain.RoomCode, id domain.PlayerID, username, contact string) (JoinedRoom, error) {
	var resp JoinedRoom
	err := c.withRoom(code, func(e *roomEntry) error {
		room := e.room
		if room.Phase != domain.PhaseLobby {
			return ErrGameAlreadyStarted
		}
		if room.PlayerByName(username) != nil {
			return ErrUsernameTaken
		}
		p, err := domain.NewPlayer(id, username, contact)
		if err != nil {
			return err
		}
		room.Players = append(room.Players, p)
		log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Str("player", username).Int("total", len(room.Players)).Msg("player joined")

		c.Out.BroadcastRoom(room.Code, PlayersUpdated{Type: evPlayersUpdated, Players: snapshotPlayers(room)})
		resp = JoinedRoom{
			Type:     evJoinedRoom,
			RoomCode: room.Code,
			IsHost:   false,
			Players:  snapshotPlayers(room),
		}
		return nil
	})
	return resp, err
}

// Start flips the room into the in-progress phase: scores reset, chat
// cleared, round 1, rotation cycle reset, timer started.
func (c *Coordinator) Start(code domain.RoomCode, id domain.PlayerID) error {
	return c.withRoom(code, func(e *roomEntry) error {
		room := e.room
		if err := requireHost(e, id); err != nil {
			return err
		}
		if len(room.Players) < 2 {
			return ErrInsufficientPlayer
		}
		tracks, err := c.Catalog.Tracks()
		if err != nil {
			return fmt.Errorf("list tracks: %w", err)
		}
		if len(tracks) == 0 {
			return ErrNoTracksAvailable
		}

		room.Phase = domain.PhaseInProgress
		room.Scores = make(map[string]int)
		room.Chat = nil
		room.CurrentRound = 1
		clear(room.Rotation.Used)
		room.Rotation.Cursor = 0

		// A restart replaces any timer from the previous game.
		if e.timer != nil {
			e.timer.Cancel()
		}
		if e.winTimer != nil {
			e.winTimer.Cancel()
			e.winTimer = nil
		}
		c.startTimerLocked(e)
		log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Int("players", len(room.Players)).Msg("game started")

		c.Out.BroadcastRoom(room.Code, GameStarted{
			Type:     evGameStarted,
			Songs:    tracks,
			Scores:   snapshotScores(room),
			HostName: room.Host().Username,
			Players:  snapshotPlayers(room),
			Round:    room.CurrentRound,
		})
		return nil
	})
}

// PlaySong announces the host's pick to the room. Playback itself is
// client-side; the clip duration is advisory.
func (c *Coordinator) PlaySong(code domain.RoomCode, id domain.PlayerID, songPath, songName string, startOffset int) error {
	return c.withRoom(code, func(e *roomEntry) error {
		if err := requireHost(e, id); err != nil {
			return err
		}
		log.Info().Str("module", "game.coordinator").Str("code", string(e.room.Code)).Str("song", songName).Msg("song playing")
		c.Out.BroadcastRoom(e.room.Code, SongPlaying{
			Type:        evSongPlaying,
			SongPath:    songPath,
			SongName:    songName,
			HostName:    e.room.Host().Username,
			StartOffset: startOffset,
			Duration:    c.Opts.ClipSeconds,
		})
		return nil
	})
}

func (c *Coordinator) StopSong(code domain.RoomCode, id domain.PlayerID) error {
	return c.withRoom(code, func(e *roomEntry) error {
		if err := requireHost(e, id); err != nil {
			return err
		}
		c.Out.BroadcastRoom(e.room.Code, SongStopped{Type: evSongStopped})
		return nil
	})
}

// DeclareWinner credits a point and, when enabled, schedules an
// automatic host rotation shortly after so the winner screen is seen.
func (c *Coordinator) DeclareWinner(code domain.RoomCode, id domain.PlayerID, winnerName, songName string) error {
	return c.withRoom(code, func(e *roomEntry) error {
		room := e.room
		if err := requireHost(e, id); err != nil {
			return err
		}
		room.Scores[winnerName]++
		log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Str("winner", winnerName).Int("score", room.Scores[winnerName]).Msg("winner declared")

		c.Out.BroadcastRoom(room.Code, WinnerDeclared{
			Type:       evWinnerDeclared,
			WinnerName: winnerName,
			SongName:   songName,
			Scores:     snapshotScores(room),
		})

		if c.Opts.WinRotateSeconds > 0 {
			if e.winTimer != nil {
				e.winTimer.Cancel()
			}
			wt := NewRoundTimer(c.Opts.WinRotateSeconds)
			e.winTimer = wt
			roomCode := room.Code
			wt.Start(c.Tickers, nil, func(t *RoundTimer) {
				c.onWinDelayExpired(roomCode, t)
			})
		}
		return nil
	})
}

// MoveHost is the host's manual advance: cancel the running timer,
// rotate, start a fresh timer at the full duration.
func (c *Coordinator) MoveHost(code domain.RoomCode, id domain.PlayerID) error {
	return c.withRoom(code, func(e *roomEntry) error {
		if err := requireHost(e, id); err != nil {
			return err
		}
		c.rotateLocked(e)
		return nil
	})
}

// SendMessage appends to the capped chat log and fans the message out.
func (c *Coordinator) SendMessage(code domain.RoomCode, id domain.PlayerID, text string) error {
	return c.withRoom(code, func(e *roomEntry) error {
		room := e.room
		p := room.PlayerByID(id)
		if p == nil {
			return ErrNotMember
		}
		msg := domain.ChatMessage{Username: p.Username, Text: text, Timestamp: time.Now()}
		room.AppendChat(msg)
		c.Out.BroadcastRoom(room.Code, MessageReceived{
			Type:      evMessageReceived,
			Username:  msg.Username,
			Message:   msg.Text,
			Timestamp: msg.Timestamp,
		})
		return nil
	})
}

// Leave removes a player. An emptied room is destroyed on the spot;
// a departing host is replaced by the first player in join order,
// without consulting the rotation state or bumping the round.
func (c *Coordinator) Leave(code domain.RoomCode, id domain.PlayerID) error {
	return c.withRoom(code, func(e *roomEntry) error {
		room := e.room
		removed, wasHost := room.RemovePlayer(id)
		if !removed {
			return ErrNotMember
		}
		log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Int("remaining", len(room.Players)).Msg("player left")

		if len(room.Players) == 0 {
			e.closed = true
			if e.timer != nil {
				e.timer.Cancel()
			}
			if e.winTimer != nil {
				e.winTimer.Cancel()
			}
			c.Registry.drop(room.Code)
			log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Msg("room deleted (empty)")
			return nil
		}

		if wasHost {
			// A pending post-win rotation would now start from the
			// wrong host; the departure supersedes it.
			if e.winTimer != nil {
				e.winTimer.Cancel()
				e.winTimer = nil
			}
			first := room.Players[0]
			first.IsHost = true
			log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Str("host", first.Username).Msg("host left, promoted first player")
			c.Out.BroadcastRoom(room.Code, HostChanged{
				Type:        evHostChanged,
				NewHostID:   first.ID,
				NewHostName: first.Username,
				Players:     snapshotPlayers(room),
			})
		}

		c.Out.BroadcastRoom(room.Code, PlayersUpdated{Type: evPlayersUpdated, Players: snapshotPlayers(room)})
		return nil
	})
}

// rotateLocked applies one host rotation: policy pick, role flip,
// round bump, timer replacement, notification. No-op with <2 players.
// Caller holds the entry lock.
func (c *Coordinator) rotateLocked(e *roomEntry) bool {
	room := e.room
	next := c.Policy.Next(room)
	if next == nil {
		return false
	}
	for _, p := range room.Players {
		p.IsHost = false
	}
	next.IsHost = true
	room.CurrentRound++

	if e.timer != nil {
		e.timer.Cancel()
	}
	if e.winTimer != nil {
		e.winTimer.Cancel()
		e.winTimer = nil
	}
	c.startTimerLocked(e)

	log.Info().Str("module", "game.coordinator").Str("code", string(room.Code)).Str("host", next.Username).Int("round", room.CurrentRound).Msg("host rotated")
	c.Out.BroadcastRoom(room.Code, HostChanged{
		Type:        evHostChanged,
		NewHostID:   next.ID,
		NewHostName: next.Username,
		Players:     snapshotPlayers(room),
		Round:       room.CurrentRound,
	})
	return true
}

// startTimerLocked replaces the room's round timer with a fresh one at
// the full duration. Caller holds the entry lock; at most one live
// timer exists per room because the previous one is always cancelled
// first by the paths that get here.
func (c *Coordinator) startTimerLocked(e *roomEntry) {
	code := e.room.Code
	t := NewRoundTimer(c.Opts.RoundSeconds)
	e.timer = t
	t.Start(c.Tickers,
		func(t *RoundTimer, remaining int) { c.onRoundTick(code, t, remaining) },
		func(t *RoundTimer) { c.onRoundExpired(code, t) },
	)
}

// onRoundTick relays a countdown update. The identity check fences
// ticks from a timer that was cancelled while this call was in flight.
func (c *Coordinator) onRoundTick(code domain.RoomCode, t *RoundTimer, remaining int) {
	e, ok := c.Registry.get(code)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.timer != t {
		return
	}
	c.Out.BroadcastRoom(code, TimerUpdate{Type: evTimerUpdate, TimeRemaining: remaining})
}

// onRoundExpired rotates the host automatically when the round timer
// runs out. A stale expiry (timer already replaced) does nothing.
func (c *Coordinator) onRoundExpired(code domain.RoomCode, t *RoundTimer) {
	e, ok := c.Registry.get(code)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.timer != t {
		return
	}
	log.Info().Str("module", "game.coordinator").Str("code", string(code)).Msg("round timer expired")
	c.rotateLocked(e)
}

func (c *Coordinator) onWinDelayExpired(code domain.RoomCode, t *RoundTimer) {
	e, ok := c.Registry.get(code)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.winTimer != t {
		return
	}
	e.winTimer = nil
	c.rotateLocked(e)
}
