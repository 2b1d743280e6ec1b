package drag

import (
	"sync"
	"time"
)

// Surface is the host's rendered calendar as seen by the engine.
// Methods are called with the engine lock held and must not call back into
// the Engine.
type Surface interface {
	// Viewport returns the bounds of the scroll container.
	Viewport() Rect
	// ScrollOffset returns the container's current vertical scroll offset.
	ScrollOffset() float64
	// ScrollBy scrolls the container by dy. The surface clamps to its range.
	ScrollBy(dy float64)
	// Grid returns the bounds of the day-column grid. ok is false when the
	// grid is not rendered.
	Grid() (grid Rect, ok bool)
}

// Scheduler runs fn every d until the returned stop function is called.
// Stop must not wait for a running fn to return.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler runs callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Logger receives structured gesture events.
type Logger interface {
	Log(event string, data map[string]any)
}

type nopLogger struct{}

func (nopLogger) Log(string, map[string]any) {}
