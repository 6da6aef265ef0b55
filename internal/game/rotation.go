package game

import "github.com/dkeye/Tune/internal/domain"

// RotationPolicy selects the next host: round-robin over join order,
// with no player repeating until everyone has hosted once in the
// current cycle.
type RotationPolicy struct{}

// Next picks the next host and updates the room's rotation state.
// Returns nil when rotation is meaningless (<2 players); the caller
// must then leave host, round and timer untouched.
//
// The selected player is only marked in the rotation state here;
// flipping IsHost, bumping the round and restarting the timer are the
// coordinator's job.
func (RotationPolicy) Next(room *domain.Room) *domain.Player {
	n := len(room.Players)
	if n < 2 {
		return nil
	}
	rs := &room.Rotation
	hostIdx := room.HostIndex()

	for off := 0; off < n; off++ {
		i := (rs.Cursor + off) % n
		if i == hostIdx {
			continue
		}
		p := room.Players[i]
		if _, hosted := rs.Used[p.ID]; hosted {
			continue
		}
		rs.Cursor = i
		rs.Used[p.ID] = struct{}{}
		return p
	}

	// Everyone else already hosted this cycle: start a new one.
	clear(rs.Used)
	i := rs.Cursor % n
	rs.Cursor = i
	p := room.Players[i]
	rs.Used[p.ID] = struct{}{}
	return p
}
