package signal

import (
	"encoding/json"
	"strings"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) handleCreateRoom(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type     string `json:"type"`
		Username string `json:"username"`
		Contact  string `json:"contact"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}

	resp, err := ctl.Coord.CreateRoom(sid, p.Username, p.Contact)
	if err != nil {
		ctl.sendError(conn, err)
		return
	}
	ctl.sessions.SetRoom(sid, resp.RoomCode)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("code", string(resp.RoomCode)).Msg("room created")
	ctl.sendJSON(conn, resp)
}

func (ctl *Controller) handleJoinRoom(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type     string `json:"type"`
		RoomCode string `json:"roomCode"`
		Username string `json:"username"`
		Contact  string `json:"contact"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	code := domain.RoomCode(strings.ToUpper(p.RoomCode))

	// Join the broadcast group first so the joiner sees the
	// membership update their own join produces.
	ctl.sessions.SetRoom(sid, code)
	resp, err := ctl.Coord.Join(code, sid, p.Username, p.Contact)
	if err != nil {
		ctl.sessions.ClearRoom(sid)
		ctl.sendError(conn, err)
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("code", string(code)).Str("username", p.Username).Msg("joined room")
	ctl.sendJSON(conn, resp)
}

func (ctl *Controller) handleLeaveRoom(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type     string `json:"type"`
		RoomCode string `json:"roomCode"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	code := domain.RoomCode(strings.ToUpper(p.RoomCode))

	if err := ctl.Coord.Leave(code, sid); err != nil {
		// Leaving a room you are not in is not worth an error frame.
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("leave ignored")
	}
	ctl.sessions.ClearRoom(sid)
	ctl.sendJSON(conn, map[string]any{"type": "leftRoom"})
}
