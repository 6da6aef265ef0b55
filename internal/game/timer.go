package game

import (
	"sync"
	"time"
)

type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerExpired
	TimerCancelled
)

// RoundTimer counts down once per second from a fixed number of
// seconds. Each tick reports the remaining value through onTick; on
// reaching zero the timer expires exactly once through onExpire.
// Cancel stops a running timer; a cancelled timer never ticks or
// expires again. Stale callbacks already in flight are fenced by the
// coordinator comparing timer identity under the room lock.
type RoundTimer struct {
	mu        sync.Mutex
	state     TimerState
	remaining int
	stop      chan struct{}
}

func NewRoundTimer(seconds int) *RoundTimer {
	return &RoundTimer{
		state:     TimerIdle,
		remaining: seconds,
		stop:      make(chan struct{}),
	}
}

// Start moves the timer to Running and begins consuming ticks.
// onTick may be nil. Start is a no-op unless the timer is Idle.
func (t *RoundTimer) Start(tf TickerFactory, onTick func(t *RoundTimer, remaining int), onExpire func(t *RoundTimer)) {
	t.mu.Lock()
	if t.state != TimerIdle {
		t.mu.Unlock()
		return
	}
	t.state = TimerRunning
	t.mu.Unlock()
	go t.run(tf.Ticker(time.Second), onTick, onExpire)
}

func (t *RoundTimer) run(tk Ticker, onTick func(t *RoundTimer, remaining int), onExpire func(t *RoundTimer)) {
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C():
			t.mu.Lock()
			if t.state != TimerRunning {
				t.mu.Unlock()
				return
			}
			t.remaining--
			rem := t.remaining
			if rem <= 0 {
				t.state = TimerExpired
			}
			t.mu.Unlock()
			if onTick != nil {
				onTick(t, rem)
			}
			if rem <= 0 {
				onExpire(t)
				return
			}
		}
	}
}

// Cancel stops a running timer immediately. Idempotent; has no effect
// on a timer that already expired.
func (t *RoundTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning || t.state == TimerIdle {
		t.state = TimerCancelled
		close(t.stop)
	}
}

func (t *RoundTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *RoundTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
