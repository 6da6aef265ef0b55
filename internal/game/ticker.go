package game

import "time"

// Ticker abstracts the periodic clock so tests can drive a round
// timer by hand instead of sleeping.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory interface {
	Ticker(d time.Duration) Ticker
}

// ClockTickers is the production factory backed by time.Ticker.
type ClockTickers struct{}

func (ClockTickers) Ticker(d time.Duration) Ticker {
	return clockTicker{time.NewTicker(d)}
}

type clockTicker struct {
	t *time.Ticker
}

func (c clockTicker) C() <-chan time.Time { return c.t.C }
func (c clockTicker) Stop()               { c.t.Stop() }
