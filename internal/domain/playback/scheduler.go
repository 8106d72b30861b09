package playback

import (
	"sync"
	"time"
)

// Timer is a cancellable recurring callback.
type Timer interface {
	Stop()
}

// Scheduler starts recurring callbacks.
type Scheduler interface {
	Every(d time.Duration, fn func()) Timer
}

// TickerScheduler runs callbacks on a time.Ticker in their own goroutine.
type TickerScheduler struct{}

// Every calls fn every d until the returned Timer is stopped.
// PRE: d > 0
// POST: fn is not called again once Stop has returned, except for a tick already in flight
func (TickerScheduler) Every(d time.Duration, fn func()) Timer {
	t := &tickerTimer{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// Stop is safe to call more than once and never blocks.
func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
