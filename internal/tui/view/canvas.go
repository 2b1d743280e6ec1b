package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell. An empty Ch marks the right half of a wide rune.
type Cell[K comparable] struct {
	Ch  string
	Key K
}

// Canvas is a fixed grid of styled cells. Styles are referenced by key and
// resolved when a line is rendered, so runs of equal keys render once.
type Canvas[K comparable] struct {
	W, H  int
	cells [][]Cell[K]
}

// NewCanvas returns a w by h canvas filled with blanks of key bg.
func NewCanvas[K comparable](w, h int, bg K) *Canvas[K] {
	c := &Canvas[K]{W: max(0, w), H: max(0, h)}
	c.cells = make([][]Cell[K], c.H)
	for y := range c.cells {
		row := make([]Cell[K], c.W)
		for x := range row {
			row[x] = Cell[K]{Ch: " ", Key: bg}
		}
		c.cells[y] = row
	}
	return c
}

// Fill paints w blank cells starting at (x, y).
func (c *Canvas[K]) Fill(x, y, w int, key K) {
	c.Put(x, y, w, strings.Repeat(" ", max(0, w)), key)
}

// Put writes s at (x, y) clipped to w cells, padding the rest of the span
// with blanks. Text that does not fit ends with an ellipsis.
func (c *Canvas[K]) Put(x, y, w int, s string, key K) {
	if y < 0 || y >= c.H || w <= 0 {
		return
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}

	row := c.cells[y]
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > x+w {
			break
		}
		c.set(row, col, string(r), key)
		if rw == 2 {
			c.set(row, col+1, "", key)
		}
		col += rw
	}
	for ; col < x+w; col++ {
		c.set(row, col, " ", key)
	}
}

func (c *Canvas[K]) set(row []Cell[K], x int, ch string, key K) {
	if x < 0 || x >= len(row) {
		return
	}
	// Overwriting either half of a wide rune blanks the other half.
	if ch != "" {
		if row[x].Ch == "" && x > 0 {
			row[x-1].Ch = " "
		}
		if x+1 < len(row) && row[x+1].Ch == "" {
			row[x+1].Ch = " "
		}
	}
	row[x] = Cell[K]{Ch: ch, Key: key}
}

// At returns the cell at (x, y).
func (c *Canvas[K]) At(x, y int) Cell[K] {
	return c.cells[y][x]
}

// Line renders row y, resolving each run of equal keys through style.
func (c *Canvas[K]) Line(y int, style func(K) lipgloss.Style) string {
	if y < 0 || y >= c.H || c.W == 0 {
		return ""
	}
	row := c.cells[y]

	var (
		b   strings.Builder
		run strings.Builder
	)
	key := row[0].Key
	for _, cell := range row {
		if cell.Key != key {
			b.WriteString(style(key).Render(run.String()))
			run.Reset()
			key = cell.Key
		}
		run.WriteString(cell.Ch)
	}
	b.WriteString(style(key).Render(run.String()))
	return b.String()
}

// Text returns row y without styling.
func (c *Canvas[K]) Text(y int) string {
	var b strings.Builder
	for _, cell := range c.cells[y] {
		b.WriteString(cell.Ch)
	}
	return b.String()
}

// Fit clips or pads content to exactly w by h cells, filling the gaps with bg.
func Fit(content string, w, h int, bg lipgloss.Color) string {
	if w <= 0 || h <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, h)
	for y := range out {
		var line string
		if y < len(lines) {
			line = lines[y]
		}
		if gap := w - lipgloss.Width(line); gap > 0 {
			line += fill.Render(strings.Repeat(" ", gap))
		}
		out[y] = line
	}
	return strings.Join(out, "\n")
}

// Message centers msg on an otherwise empty w by h screen.
func Message(w, h int, msg string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(bg))
	return Fit(placed, w, h, bg)
}
