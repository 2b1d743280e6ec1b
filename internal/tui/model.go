// Package tui provides the terminal user interface for timegrid.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
	"github.com/javiermolinar/timegrid/internal/tui/theme"
	"github.com/javiermolinar/timegrid/internal/watch"
)

// Mode represents the current keyboard interaction mode.
type Mode int

const (
	ModeNormal        Mode = iota
	ModePrompt             // typing a new event
	ModeConfirmDelete      // waiting for y/n
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModePrompt:
		return "Prompt"
	case ModeConfirmDelete:
		return "ConfirmDelete"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// dragOutbox collects engine callbacks until Update applies them.
type dragOutbox struct {
	mu         sync.Mutex
	proposal   *drag.Proposal
	updates    []drag.UpdateParams
	optimistic []drag.Event
	cancels    []string
}

func (o *dragOutbox) bridge() drag.Bridge {
	return drag.Bridge{
		Update: func(p drag.UpdateParams) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.updates = append(o.updates, p)
		},
		Optimistic: func(_ string, ev drag.Event) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.optimistic = append(o.optimistic, ev)
		},
		OnProposal: func(p drag.Proposal) {
			o.mu.Lock()
			defer o.mu.Unlock()
			if p.Phase != drag.PhaseMove {
				o.proposal = nil
				return
			}
			if o.proposal != nil && p.Seq <= o.proposal.Seq {
				return
			}
			o.proposal = &p
		},
		OnCancel: func(_ drag.Event, reason string) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.cancels = append(o.cancels, reason)
		},
	}
}

// current returns the live proposal of the active gesture, if any.
func (o *dragOutbox) current() (drag.Proposal, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.proposal == nil {
		return drag.Proposal{}, false
	}
	return *o.proposal, true
}

func (o *dragOutbox) drain() (updates []drag.UpdateParams, optimistic []drag.Event, cancels []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	updates, optimistic, cancels = o.updates, o.optimistic, o.cancels
	o.updates, o.optimistic, o.cancels = nil, nil, nil
	return updates, optimistic, cancels
}

// saveQueue runs drag saves one at a time. Only the newest waiting write of
// an event is kept, so an older position can never land after a newer one.
type saveQueue struct {
	busy    bool
	pending map[string]drag.UpdateParams
	order   []string
}

func (q *saveQueue) push(p drag.UpdateParams) {
	if q.pending == nil {
		q.pending = make(map[string]drag.UpdateParams)
	}
	if old, ok := q.pending[p.ID]; ok {
		if p.Seq > old.Seq {
			q.pending[p.ID] = p
		}
		return
	}
	q.pending[p.ID] = p
	q.order = append(q.order, p.ID)
}

// next hands out the oldest waiting save unless one is still in flight.
func (q *saveQueue) next() (drag.UpdateParams, bool) {
	if q.busy || len(q.order) == 0 {
		return drag.UpdateParams{}, false
	}
	id := q.order[0]
	q.order = q.order[1:]
	p := q.pending[id]
	delete(q.pending, id)
	q.busy = true
	return p, true
}

func (q *saveQueue) done() {
	q.busy = false
}

func (q *saveQueue) idle() bool {
	return !q.busy && len(q.order) == 0
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Drag engine and the host pieces it talks to
	engine    *drag.Engine
	surface   *gridSurface
	scheduler *teaScheduler
	outbox    *dragOutbox
	saves     *saveQueue

	// State
	week          *event.Week
	weekStart     time.Time // Monday of the loaded week
	focus         time.Time // focused day at midnight
	cursorMin     int       // minute of day of the keyboard cursor
	selectedID    string
	view          drag.View
	mode          Mode
	loading       bool
	reloadPending bool // a reload arrived mid-drag or mid-save
	scrolled      bool // initial scroll applied

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width  int
	height int
	layout layout

	// Messages
	statusMsg  string    // Temporary status/error message
	statusErr  bool      // statusMsg is an error
	statusTime time.Time // When to clear message

	nowFunc func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
		m.setFocus(now())
		m.week = event.NewWeek(m.weekStart)
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "Title [HH:MM-HH:MM]"
	ti.CharLimit = 256
	ti.Prompt = "new: "

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Prompt
	ti.PlaceholderStyle = styles.Help

	surface := &gridSurface{}
	scheduler := &teaScheduler{}
	outbox := &dragOutbox{}
	engine := drag.NewEngine(surface, outbox.bridge(), drag.Options{
		Metrics:   cfg.Metrics(),
		LiveSync:  cfg.Drag.LiveSync,
		Scheduler: scheduler,
		Logger:    debugLog,
	})

	m := &Model{
		repo:      repo,
		config:    cfg,
		theme:     t,
		styles:    styles,
		engine:    engine,
		surface:   surface,
		scheduler: scheduler,
		outbox:    outbox,
		saves:     &saveQueue{},
		view:      cfg.View(),
		mode:      ModeNormal,
		prompt:    ti,
		cursorMin: cfg.UI.StartHour * 60,
		nowFunc:   time.Now,
	}
	m.setFocus(time.Now())
	m.week = event.NewWeek(m.weekStart)
	m.loading = true

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// setFocus moves the focused day, reporting whether the week changed.
func (m *Model) setFocus(day time.Time) bool {
	m.focus = dateutil.TruncateToDay(day)
	monday, _ := dateutil.WeekRange(m.focus)
	if monday.Equal(m.weekStart) {
		return false
	}
	m.weekStart = monday
	return true
}

// hourRows returns the rows per hour of the current view.
func (m Model) hourRows() int {
	return int(m.engine.Metrics().HourHeight(m.view))
}

// relayout recomputes the geometry and pushes it to the drag surface.
func (m *Model) relayout() {
	m.layout = computeLayout(m.width, m.height, m.view, m.hourRows())
	m.surface.configure(m.layout.viewport(), m.layout.grid(), m.view == drag.ViewWeek)
	if !m.scrolled && m.layout.usable() {
		m.surface.scrollTo(float64(m.config.UI.StartHour * m.layout.hourRows))
		m.scrolled = true
	}
}

// focusColumn returns the view column of the focused day.
func (m Model) focusColumn() int {
	if m.view == drag.ViewDay {
		return 0
	}
	return max(0, m.week.Column(m.focus))
}

// dateOfColumn returns the date shown in a view column.
func (m Model) dateOfColumn(col int) time.Time {
	if m.view == drag.ViewDay {
		return m.focus
	}
	return m.week.DateOf(col)
}

// blocks lays out the events of the current view.
func (m Model) blocks() []block {
	rows := m.layout.hourRows
	if m.view == drag.ViewDay {
		col := m.week.Column(m.focus)
		if col < 0 {
			return nil
		}
		return layoutColumn(m.week.Days[col], 0, rows)
	}
	var all []block
	for col := 0; col < 7; col++ {
		all = append(all, layoutColumn(m.week.Days[col], col, rows)...)
	}
	return all
}

// selected returns the selected event if it is loaded.
func (m Model) selected() *event.Event {
	if m.selectedID == "" {
		return nil
	}
	e, _ := m.week.Find(m.selectedID)
	return e
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.repo, m.weekStart)
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo event.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, cfg)
	defer model.engine.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	w, err := watch.New(cfg.Storage.DBPath, watch.DefaultDebounce,
		func() { p.Send(commands.DBChangedMsg{}) },
		func(err error) { LogError("watch", err) },
	)
	if err != nil {
		LogError("watch", err)
	} else {
		defer func() { _ = w.Close() }()
	}

	_, err = p.Run()
	return err
}
