package signal

import (
	"encoding/json"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) handleSendMessage(sid domain.PlayerID, conn *WsConn, data []byte) {
	type payload struct {
		Type     string `json:"type"`
		RoomCode string `json:"roomCode"`
		Message  string `json:"message"`
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendBadPayload(conn, err)
		return
	}
	if p.Message == "" {
		return
	}
	if !ctl.limiter.Allow(sid) {
		ctl.sendJSON(conn, map[string]any{
			"type":    "error",
			"message": "too many messages, slow down",
		})
		return
	}
	if err := ctl.Coord.SendMessage(roomCode(p.RoomCode), sid, p.Message); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("message ignored")
	}
}
