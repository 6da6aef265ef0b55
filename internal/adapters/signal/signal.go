package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/dkeye/Tune/internal/game"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var ErrBackpressure = errors.New("backpressure")

// Controller owns the websocket side: connection lifecycle, the
// room-scoped broadcast groups and the unicast acks. All game
// decisions are delegated to the coordinator.
type Controller struct {
	Coord    *game.Coordinator
	sessions *sessionRegistry
	limiter  *ChatRateLimiter
}

func NewController(chatLimit int, chatWindow time.Duration) *Controller {
	return &Controller{
		sessions: newSessionRegistry(),
		limiter:  NewChatRateLimiter(chatLimit, chatWindow),
	}
}

// BroadcastRoom implements game.Broadcaster. TrySend never blocks, so
// it is safe to call under the coordinator's room lock.
func (ctl *Controller) BroadcastRoom(code domain.RoomCode, v any) {
	for _, conn := range ctl.sessions.ConnsOfRoom(code) {
		ctl.sendJSON(conn, v)
	}
}

// WsConn wraps a websocket with a buffered outbound channel; a full
// buffer drops the frame rather than stalling the sender.
type WsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the connection and binds it to the client token,
// which doubles as the player id for the lifetime of the connection.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := domain.PlayerID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan []byte, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.sessions.Bind(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
