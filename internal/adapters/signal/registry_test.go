package signal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistryRoomBinding(t *testing.T) {
	reg := newSessionRegistry()
	conn := &WsConn{send: make(chan []byte, 1)}
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg.Bind("p1", conn, cancel)

	_, ok := reg.RoomOf("p1")
	assert.False(t, ok)

	reg.SetRoom("p1", "ABC123")
	code, ok := reg.RoomOf("p1")
	require.True(t, ok)
	assert.Equal(t, "ABC123", string(code))

	conns := reg.ConnsOfRoom("ABC123")
	require.Len(t, conns, 1)
	assert.Same(t, conn, conns[0])

	reg.ClearRoom("p1")
	_, ok = reg.RoomOf("p1")
	assert.False(t, ok)
	assert.Empty(t, reg.ConnsOfRoom("ABC123"))
}

func TestSessionRegistryUnbindCancels(t *testing.T) {
	reg := newSessionRegistry()
	conn := &WsConn{send: make(chan []byte, 1)}
	ctx, cancel := context.WithCancel(context.Background())

	reg.Bind("p1", conn, cancel)
	reg.SetRoom("p1", "ABC123")
	reg.Unbind("p1")

	select {
	case <-ctx.Done():
	default:
		t.Fatal("unbind did not cancel the session context")
	}
	assert.Empty(t, reg.ConnsOfRoom("ABC123"))
}

func TestWsConnTrySendBackpressure(t *testing.T) {
	// TrySend on a full buffer reports backpressure instead of blocking.
	conn := &WsConn{send: make(chan []byte, 1)}
	require.NoError(t, conn.TrySend([]byte("a")))
	assert.ErrorIs(t, conn.TrySend([]byte("b")), ErrBackpressure)
}
