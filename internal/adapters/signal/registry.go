package signal

import (
	"context"
	"sync"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Code   domain.RoomCode
	Conn   *WsConn
	Cancel context.CancelFunc
}

// sessionRegistry maps live connections to players and their room,
// forming the broadcast groups the coordinator fans out to.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[domain.PlayerID]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[domain.PlayerID]*sessionEntry)}
}

func (r *sessionRegistry) Bind(sid domain.PlayerID, conn *WsConn, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "signal.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *sessionRegistry) Unbind(sid domain.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok && e.Cancel != nil {
		e.Cancel()
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "signal.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *sessionRegistry) SetRoom(sid domain.PlayerID, code domain.RoomCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.Code = code
	}
}

func (r *sessionRegistry) ClearRoom(sid domain.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.Code = ""
	}
}

func (r *sessionRegistry) RoomOf(sid domain.PlayerID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.Code == "" {
		return "", false
	}
	return e.Code, true
}

func (r *sessionRegistry) ConnsOfRoom(code domain.RoomCode) []*WsConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*WsConn, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.Code == code {
			out = append(out, e.Conn)
		}
	}
	return out
}
