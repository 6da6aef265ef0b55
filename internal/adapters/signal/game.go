package signal

import (
	"encoding/json"
	"strings"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

type roomScoped struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

func roomCode(raw string) domain.RoomCode {
	return domain.RoomCode(strings.ToUpper(raw))
}

func (ctl *Controller) handleStartGame(sid domain.PlayerID, conn *WsConn, data []byte) {
	var p roomScoped
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if err := ctl.Coord.Start(roomCode(p.RoomCode), sid); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *Controller) handlePlaySong(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type        string `json:"type"`
		RoomCode    string `json:"roomCode"`
		SongPath    string `json:"songPath"`
		SongName    string `json:"songName"`
		StartOffset int    `json:"startOffset"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if err := ctl.Coord.PlaySong(roomCode(p.RoomCode), sid, p.SongPath, p.SongName, p.StartOffset); err != nil {
		ctl.sendError(conn, err)
	}
}

// stopSong from a non-host is dropped without an error frame.
func (ctl *Controller) handleStopSong(sid domain.PlayerID, conn *WsConn, data []byte) {
	var p roomScoped
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if err := ctl.Coord.StopSong(roomCode(p.RoomCode), sid); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("stopSong ignored")
	}
}

func (ctl *Controller) handleDeclareWinner(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type       string `json:"type"`
		RoomCode   string `json:"roomCode"`
		WinnerName string `json:"winnerName"`
		SongName   string `json:"songName"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if err := ctl.Coord.DeclareWinner(roomCode(p.RoomCode), sid, p.WinnerName, p.SongName); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *Controller) handleMoveHost(sid domain.PlayerID, conn *WsConn, data []byte) {
	var p roomScoped
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if err := ctl.Coord.MoveHost(roomCode(p.RoomCode), sid); err != nil {
		ctl.sendError(conn, err)
	}
}
