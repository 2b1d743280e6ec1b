package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

// cellKind identifies how a grid cell is painted.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellGutter
	cellGutterNow
	cellHourLine
	cellCursor
	cellNow
	cellEvent
	cellEventPast
	cellEventSelected
	cellGhost
	cellIndicator
)

// styleKey selects a cached cell style. color is the event color id.
type styleKey struct {
	kind  cellKind
	color string
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title bar
	Title    lipgloss.Style
	TitleDim lipgloss.Style

	// Day headers
	Header      lipgloss.Style
	HeaderToday lipgloss.Style
	HeaderFocus lipgloss.Style

	// Time gutter
	Gutter    lipgloss.Style
	GutterNow lipgloss.Style

	// Footer
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Details     lipgloss.Style
	Help        lipgloss.Style
	Prompt      lipgloss.Style
	Confirm     lipgloss.Style

	cells map[styleKey]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette: p,
		cells:   make(map[styleKey]lipgloss.Style),
	}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	s.TitleDim = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.Header = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)
	s.HeaderToday = s.Header.
		Bold(true).
		Foreground(p.Accent)
	s.HeaderFocus = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent)

	s.Gutter = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.GutterNow = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Now)

	s.Status = lipgloss.NewStyle().
		Foreground(p.Accent)
	s.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Error)
	s.Details = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.Help = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.Prompt = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.Confirm = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning)

	return s
}

// cell returns the style for a grid cell, building it on first use.
func (s *Styles) cell(k styleKey) lipgloss.Style {
	if st, ok := s.cells[k]; ok {
		return st
	}
	st := s.buildCell(k)
	s.cells[k] = st
	return st
}

func (s *Styles) buildCell(k styleKey) lipgloss.Style {
	p := s.palette
	base := lipgloss.NewStyle()
	ev := p.Event(k.color)

	switch k.kind {
	case cellGutter:
		return s.Gutter
	case cellGutterNow:
		return s.GutterNow
	case cellHourLine:
		return base.Foreground(p.BgHighlight)
	case cellCursor:
		return base.Foreground(p.Accent).Background(p.BgSelection)
	case cellNow:
		return base.Foreground(p.Now)
	case cellEvent:
		return base.Foreground(ev.Fg).Background(ev.Bg)
	case cellEventPast:
		return base.Foreground(p.FgMuted).Background(ev.BgPast)
	case cellEventSelected:
		return base.Bold(true).Foreground(ev.Fg).Background(ev.Bg).Underline(true)
	case cellGhost:
		return base.Bold(true).Foreground(p.TextOnWarning).Background(p.Warning)
	case cellIndicator:
		return base.Bold(true).Foreground(p.Accent).Background(p.BgSelection)
	default:
		return base
	}
}
