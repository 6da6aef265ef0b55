package game

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLen      = 6
	codeRetries  = 5
)

func randomCode() domain.RoomCode {
	b := make([]byte, codeLen)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return domain.RoomCode(b)
}

// roomEntry pairs a room with its lock and timers. The entry mutex
// serializes every event against the room: a join, a timer expiry and
// a manual rotation can never interleave their mutations.
type roomEntry struct {
	mu       sync.Mutex
	room     *domain.Room
	timer    *RoundTimer
	winTimer *RoundTimer
	closed   bool
}

type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	PlayerCount int             `json:"player_count"`
	Started     bool            `json:"started"`
}

// Registry owns the set of live rooms, keyed by code. It is an
// injectable container: independent registries never share state.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]*roomEntry
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomCode]*roomEntry)}
}

func normalizeCode(code domain.RoomCode) domain.RoomCode {
	return domain.RoomCode(strings.ToUpper(string(code)))
}

// create registers a fresh room with host as its only player.
// Generation retries on collision; ErrCodeExhausted after that.
func (r *Registry) create(host *domain.Player) (*roomEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for range codeRetries {
		code := randomCode()
		if _, taken := r.rooms[code]; taken {
			continue
		}
		e := &roomEntry{room: domain.NewRoom(code, host)}
		r.rooms[code] = e
		log.Info().Str("module", "game.registry").Str("code", string(code)).Str("host", host.Username).Msg("room created")
		return e, nil
	}
	return nil, ErrCodeExhausted
}

func (r *Registry) get(code domain.RoomCode) (*roomEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[normalizeCode(code)]
	return e, ok
}

// drop only unlinks the entry; callers that hold the entry lock mark
// it closed and cancel its timers themselves.
func (r *Registry) drop(code domain.RoomCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, normalizeCode(code))
}

// Remove deletes the room and cancels its timers. Idempotent.
func (r *Registry) Remove(code domain.RoomCode) {
	code = normalizeCode(code)
	r.mu.Lock()
	e, ok := r.rooms[code]
	delete(r.rooms, code)
	r.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	e.closed = true
	if e.timer != nil {
		e.timer.Cancel()
	}
	if e.winTimer != nil {
		e.winTimer.Cancel()
	}
	e.mu.Unlock()
	log.Info().Str("module", "game.registry").Str("code", string(code)).Msg("room removed")
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) List() []RoomInfo {
	r.mu.RLock()
	entries := make([]*roomEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]RoomInfo, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, RoomInfo{
			Code:        e.room.Code,
			PlayerCount: len(e.room.Players),
			Started:     e.room.Phase == domain.PhaseInProgress,
		})
		e.mu.Unlock()
	}
	return out
}
