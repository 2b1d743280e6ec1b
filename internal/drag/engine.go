package drag

import (
	"errors"
	"sync"
	"time"
)

// Engine errors.
var (
	ErrAlreadyDragging = errors.New("a drag is already in progress")
	ErrInvalidEvent    = errors.New("event start must be before end")
	ErrNoSurface       = errors.New("no drag surface")
	ErrEngineClosed    = errors.New("drag engine closed")
)

// State is the state of an Engine.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// String returns the state name.
func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Options configures an Engine.
type Options struct {
	Metrics Metrics
	// LiveSync additionally commits on every move of a cross-day drag.
	LiveSync  bool
	Scheduler Scheduler
	Logger    Logger
}

// SessionInfo is a snapshot of the active gesture.
type SessionInfo struct {
	Kind       Kind
	View       View
	Original   Event
	Current    Event
	HourHeight float64
	Column     int
	Scrolling  int // -1 up, +1 down, 0 idle
}

// session is the state of one gesture. original and anchor never change
// after Begin.
type session struct {
	kind         Kind
	view         View
	original     Event
	anchor       Point
	anchorScroll float64
	hourHeight   float64

	grid        Rect
	crossDay    bool // false when the grid could not be measured
	startColumn int

	last      Point
	current   Event
	column    int
	indicator *Indicator

	scrollDir  int
	scrollGen  uint64
	stopScroll func()
}

// Engine is the pointer gesture state machine. At most one gesture is active
// per engine. It is safe for concurrent use; auto-scroll ticks arrive on the
// scheduler's goroutine.
type Engine struct {
	mu        sync.Mutex
	surface   Surface
	bridge    Bridge
	metrics   Metrics
	liveSync  bool
	scheduler Scheduler
	logger    Logger

	sess   *session
	seq    uint64
	closed bool
}

// NewEngine creates an idle engine.
func NewEngine(surface Surface, bridge Bridge, opts Options) *Engine {
	e := &Engine{
		surface:   surface,
		bridge:    bridge,
		metrics:   opts.Metrics.withDefaults(),
		liveSync:  opts.LiveSync,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
	}
	if e.scheduler == nil {
		e.scheduler = TickerScheduler{}
	}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	return e
}

// Metrics returns the engine metrics with defaults applied.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess != nil {
		return StateDragging
	}
	return StateIdle
}

// Session returns a snapshot of the active gesture.
func (e *Engine) Session() (SessionInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.sess
	if s == nil {
		return SessionInfo{}, false
	}
	return SessionInfo{
		Kind:       s.kind,
		View:       s.view,
		Original:   s.original,
		Current:    s.current,
		HourHeight: s.hourHeight,
		Column:     s.column,
		Scrolling:  s.scrollDir,
	}, true
}

// Indicator returns the drop indicator of a cross-day drag, or nil.
func (e *Engine) Indicator() *Indicator {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess == nil || e.sess.indicator == nil {
		return nil
	}
	ind := *e.sess.indicator
	return &ind
}

// Begin starts a gesture of the given kind on ev, pressed at p.
// For a cross-day move the press column is taken as the event's column; if
// the grid cannot be measured the drag degrades to vertical movement only.
func (e *Engine) Begin(kind Kind, ev Event, view View, p Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed:
		return ErrEngineClosed
	case e.sess != nil:
		return ErrAlreadyDragging
	case e.surface == nil:
		return ErrNoSurface
	case !ev.Valid():
		return ErrInvalidEvent
	}

	s := &session{
		kind:         kind,
		view:         view,
		original:     ev,
		anchor:       p,
		anchorScroll: e.surface.ScrollOffset(),
		hourHeight:   e.metrics.HourHeight(view),
		last:         p,
		current:      ev,
	}
	if grid, ok := e.surface.Grid(); ok && ColumnWidth(grid, e.metrics.Columns) > 0 {
		s.grid = grid
		s.startColumn = ColumnAt(p.X, grid, e.metrics.Columns)
		s.crossDay = kind == KindMoveAcrossDay
	}
	s.column = s.startColumn
	e.sess = s

	e.logger.Log("DRAG_BEGIN", map[string]any{
		"kind":   kind.String(),
		"view":   view.String(),
		"id":     ev.ID,
		"start":  ev.Start.Format(time.RFC3339),
		"end":    ev.End.Format(time.RFC3339),
		"column": s.startColumn,
		"cross":  s.crossDay,
	})
	return nil
}

// Move updates the gesture for a pointer at p and emits a proposal.
// It returns false when no gesture is active.
func (e *Engine) Move(p Point) (Proposal, bool) {
	e.mu.Lock()
	s := e.sess
	if s == nil {
		e.mu.Unlock()
		return Proposal{}, false
	}

	s.last = p
	prop := e.recompute(s, PhaseMove)
	e.updateAutoScroll(s, p)

	var live *UpdateParams
	if e.liveSync && s.kind == KindMoveAcrossDay {
		live = &UpdateParams{ID: s.original.ID, Data: s.current, Seq: prop.Seq}
	}
	e.mu.Unlock()

	e.bridge.propose(prop)
	if live != nil && e.bridge.Update != nil {
		e.bridge.Update(*live)
	}
	return prop, true
}

// End finishes the gesture at p and commits the final event through the
// bridge. It returns false when no gesture is active.
func (e *Engine) End(p Point) (UpdateParams, bool) {
	e.mu.Lock()
	s := e.sess
	if s == nil {
		e.mu.Unlock()
		return UpdateParams{}, false
	}

	s.last = p
	prop := e.recompute(s, PhaseCommit)
	prop.Indicator = nil
	e.release(s)

	params := UpdateParams{ID: s.original.ID, Data: s.current, Seq: prop.Seq}
	e.logger.Log("DRAG_COMMIT", map[string]any{
		"kind":  s.kind.String(),
		"id":    params.ID,
		"start": params.Data.Start.Format(time.RFC3339),
		"end":   params.Data.End.Format(time.RFC3339),
	})
	e.mu.Unlock()

	e.bridge.commit(params)
	e.bridge.propose(prop)
	return params, true
}

// Cancel discards the active gesture without committing. The emitted
// proposal carries the original event so the host can restore its block.
func (e *Engine) Cancel(reason string) bool {
	e.mu.Lock()
	s := e.sess
	if s == nil {
		e.mu.Unlock()
		return false
	}

	e.release(s)
	e.seq++
	prop := Proposal{
		Seq:    e.seq,
		Phase:  PhaseCancel,
		Kind:   s.kind,
		Event:  s.original,
		Top:    TopForTime(s.original.Start, s.hourHeight),
		Height: HeightForRange(s.original.Start, s.original.End, s.hourHeight),
		Column: s.startColumn,
	}
	e.logger.Log("DRAG_CANCEL", map[string]any{
		"kind":   s.kind.String(),
		"id":     s.original.ID,
		"reason": reason,
	})
	e.mu.Unlock()

	e.bridge.propose(prop)
	if e.bridge.OnCancel != nil {
		e.bridge.OnCancel(s.original, reason)
	}
	return true
}

// Close cancels any active gesture and rejects new ones.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.Cancel("teardown")
}

// recompute derives the candidate event from the last pointer position and
// the scroll distance travelled since Begin. Called with e.mu held.
func (e *Engine) recompute(s *session, phase Phase) Proposal {
	dy := (s.last.Y - s.anchor.Y) + (e.surface.ScrollOffset() - s.anchorScroll)
	minutes := PixelsToMinutes(dy, s.hourHeight)

	switch s.kind {
	case KindResize:
		s.current = Resize(s.original, minutes)
	case KindMoveWithinDay:
		s.current = MoveWithinDay(s.original, minutes)
	case KindMoveAcrossDay:
		col := s.startColumn
		if s.crossDay {
			col = ColumnAt(s.last.X, s.grid, e.metrics.Columns)
		}
		s.column = col
		s.current = MoveAcrossDay(s.original, col-s.startColumn, minutes)
		s.indicator = &Indicator{
			Top:    TopForTime(s.current.Start, s.hourHeight),
			Column: col,
		}
	}

	e.seq++
	prop := Proposal{
		Seq:    e.seq,
		Phase:  phase,
		Kind:   s.kind,
		Event:  s.current,
		Top:    TopForTime(s.current.Start, s.hourHeight),
		Height: HeightForRange(s.current.Start, s.current.End, s.hourHeight),
		Column: s.column,
	}
	if s.indicator != nil {
		ind := *s.indicator
		prop.Indicator = &ind
	}
	return prop
}

// updateAutoScroll starts or stops the scroll-assist timer depending on how
// close p is to the viewport edges. Called with e.mu held.
func (e *Engine) updateAutoScroll(s *session, p Point) {
	vp := e.surface.Viewport()
	dir := 0
	switch {
	case p.Y < vp.Top+e.metrics.ScrollBand:
		dir = -1
	case p.Y > vp.Bottom()-e.metrics.ScrollBand:
		dir = 1
	}

	if dir == s.scrollDir {
		return
	}
	e.stopAutoScroll(s)
	s.scrollDir = dir
	if dir == 0 {
		return
	}

	s.scrollGen++
	gen := s.scrollGen
	s.stopScroll = e.scheduler.Every(e.metrics.ScrollInterval, func() {
		e.autoScrollTick(s, gen)
	})
	e.logger.Log("AUTOSCROLL_START", map[string]any{"dir": dir})
}

// stopAutoScroll cancels the timer if running. Called with e.mu held.
func (e *Engine) stopAutoScroll(s *session) {
	if s.stopScroll == nil {
		return
	}
	s.stopScroll()
	s.stopScroll = nil
	s.scrollGen++
	e.logger.Log("AUTOSCROLL_STOP", map[string]any{"dir": s.scrollDir})
}

// autoScrollTick scrolls one step and re-proposes from the last pointer
// position. Ticks from a stopped timer or an ended session are ignored.
func (e *Engine) autoScrollTick(s *session, gen uint64) {
	e.mu.Lock()
	if e.sess != s || s.scrollGen != gen || s.scrollDir == 0 {
		e.mu.Unlock()
		return
	}
	e.surface.ScrollBy(float64(s.scrollDir) * e.metrics.ScrollStep)
	prop := e.recompute(s, PhaseMove)
	e.mu.Unlock()

	e.bridge.propose(prop)
}

// release ends the session and frees its timer. Called with e.mu held.
func (e *Engine) release(s *session) {
	e.stopAutoScroll(s)
	s.scrollDir = 0
	s.indicator = nil
	e.sess = nil
}
