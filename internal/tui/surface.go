package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/drag"
)

// gridSurface exposes the rendered grid to the drag engine in terminal
// cells. It is shared by pointer between model copies and updated on every
// layout change.
type gridSurface struct {
	mu sync.Mutex

	viewport  drag.Rect // visible grid body on screen
	grid      drag.Rect // full 24h week grid on screen, scrolled
	hasGrid   bool      // false in the day view
	scroll    float64   // rows scrolled past midnight
	maxScroll float64
}

func (s *gridSurface) Viewport() drag.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

func (s *gridSurface) ScrollOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scroll
}

func (s *gridSurface) ScrollBy(dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = clampScroll(s.scroll+dy, s.maxScroll)
	s.grid.Top = s.viewport.Top - s.scroll
}

func (s *gridSurface) Grid() (drag.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid, s.hasGrid
}

// Rows returns the current scroll offset in whole rows.
func (s *gridSurface) Rows() int {
	return int(s.ScrollOffset())
}

// configure updates the geometry after a resize or view change, keeping the
// scroll offset inside the new bounds.
func (s *gridSurface) configure(viewport, grid drag.Rect, hasGrid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = viewport
	s.maxScroll = max(0, grid.Height-viewport.Height)
	s.scroll = clampScroll(s.scroll, s.maxScroll)
	grid.Top = viewport.Top - s.scroll
	s.grid = grid
	s.hasGrid = hasGrid
}

// scrollTo sets the absolute scroll offset.
func (s *gridSurface) scrollTo(rows float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = clampScroll(rows, s.maxScroll)
	s.grid.Top = s.viewport.Top - s.scroll
}

func clampScroll(v, maxScroll float64) float64 {
	return max(0, min(v, maxScroll))
}

// autoScrollTickMsg drives one engine auto-scroll tick.
type autoScrollTickMsg struct {
	gen uint64
}

// teaScheduler runs engine timers as bubbletea tick loops so every engine
// callback happens on the Update goroutine. A loop is identified by its
// generation; ticks from a stopped loop are dropped.
type teaScheduler struct {
	mu       sync.Mutex
	gen      uint64
	fn       func()
	interval time.Duration
	pending  bool
}

// Every records a new loop. The first tick is issued by the next call to Cmd.
func (s *teaScheduler) Every(d time.Duration, fn func()) func() {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.fn = fn
	s.interval = d
	s.pending = true
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.gen++
			s.fn = nil
			s.pending = false
		}
	}
}

// Cmd returns the first tick of a loop started since the last call, or nil.
func (s *teaScheduler) Cmd() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending || s.fn == nil {
		return nil
	}
	s.pending = false
	return tickAfter(s.interval, s.gen)
}

// Fire runs the loop for a tick of generation gen and schedules the next one.
func (s *teaScheduler) Fire(gen uint64) tea.Cmd {
	s.mu.Lock()
	if gen != s.gen || s.fn == nil {
		s.mu.Unlock()
		return nil
	}
	fn := s.fn
	s.mu.Unlock()

	fn()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.fn == nil {
		return nil
	}
	return tickAfter(s.interval, gen)
}

// Running reports whether a loop is active.
func (s *teaScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

func tickAfter(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return autoScrollTickMsg{gen: gen}
	})
}
