package game

import (
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Tune/internal/domain"
	"github.com/stretchr/testify/mock"
)

// --- Catalog ---

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Tracks() ([]domain.Track, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Track), args.Error(1)
}

// --- Ticker ---

// fakeTicker is a hand-cranked clock: tests push ticks instead of
// sleeping. The channel is unbuffered, so a send completes only once
// the timer goroutine has picked the tick up.
type fakeTicker struct {
	ch chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// tick pushes n ticks, failing the test instead of hanging if the
// consumer is gone.
func (f *fakeTicker) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case f.ch <- time.Now():
		case <-time.After(time.Second):
			t.Fatalf("tick %d not consumed", i+1)
		}
	}
}

type fakeTickers struct {
	mu      sync.Mutex
	created []*fakeTicker
}

func (f *fakeTickers) Ticker(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk := &fakeTicker{ch: make(chan time.Time)}
	f.created = append(f.created, tk)
	return tk
}

func (f *fakeTickers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeTickers) last() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// --- Broadcaster ---

type broadcastEvent struct {
	Code    domain.RoomCode
	Payload any
}

type recorder struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (r *recorder) BroadcastRoom(code domain.RoomCode, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, broadcastEvent{Code: code, Payload: v})
}

// lastOfType returns the most recent payload of type T, if any.
func lastOfType[T any](r *recorder) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	for i := len(r.events) - 1; i >= 0; i-- {
		if v, ok := r.events[i].Payload.(T); ok {
			return v, true
		}
	}
	return zero, false
}

func countOfType[T any](r *recorder) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if _, ok := e.Payload.(T); ok {
			n++
		}
	}
	return n
}
