package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/dkeye/Tune/internal/game"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) writePump(ctx context.Context, c *WsConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, sid domain.PlayerID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.disconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleEvent(sid, c, data)
		}
	}
}

// disconnect is the implicit leaveRoom: the player is removed from
// their room, which may promote a new host or destroy the room.
func (ctl *Controller) disconnect(sid domain.PlayerID) {
	if code, ok := ctl.sessions.RoomOf(sid); ok {
		if err := ctl.Coord.Leave(code, sid); err != nil {
			log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("leave on disconnect")
		}
	}
	ctl.sessions.Unbind(sid)
}

func (ctl *Controller) handleEvent(sid domain.PlayerID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "createRoom":
		ctl.handleCreateRoom(sid, c, data)
	case "joinRoom":
		ctl.handleJoinRoom(sid, c, data)
	case "startGame":
		ctl.handleStartGame(sid, c, data)
	case "playSong":
		ctl.handlePlaySong(sid, c, data)
	case "stopSong":
		ctl.handleStopSong(sid, c, data)
	case "declareWinner":
		ctl.handleDeclareWinner(sid, c, data)
	case "moveHost":
		ctl.handleMoveHost(sid, c, data)
	case "sendMessage":
		ctl.handleSendMessage(sid, c, data)
	case "leaveRoom":
		ctl.handleLeaveRoom(sid, c, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *Controller) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

var callerErrors = []error{
	game.ErrRoomNotFound,
	game.ErrGameAlreadyStarted,
	game.ErrUsernameTaken,
	game.ErrInsufficientPlayer,
	game.ErrNotHost,
	game.ErrNoTracksAvailable,
	game.ErrCodeExhausted,
	domain.ErrUsernameEmpty,
	domain.ErrUsernameTooLong,
}

// sendError unicasts a rejection. Taxonomy errors go back verbatim;
// anything else is an internal fault and is masked.
func (ctl *Controller) sendError(c *WsConn, err error) {
	msg := "internal error"
	for _, known := range callerErrors {
		if errors.Is(err, known) {
			msg = known.Error()
			break
		}
	}
	if msg == "internal error" {
		log.Error().Err(err).Str("module", "signal").Msg("internal fault")
	}
	ctl.sendJSON(c, map[string]any{
		"type":    "error",
		"message": msg,
	})
}

func (ctl *Controller) sendBadPayload(c *WsConn, err error) {
	log.Error().Err(err).Str("module", "signal").Msg("bad payload")
	ctl.sendJSON(c, map[string]any{
		"type":    "error",
		"message": "bad_payload",
	})
}
