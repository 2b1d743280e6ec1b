package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvas_Put(t *testing.T) {
	c := NewCanvas(10, 1, 0)

	c.Put(2, 0, 5, "abc", 1)
	if got := c.Text(0); got != "  abc     " {
		t.Fatalf("Text = %q", got)
	}
	if c.At(1, 0).Key != 0 || c.At(2, 0).Key != 1 || c.At(6, 0).Key != 1 || c.At(7, 0).Key != 0 {
		t.Fatal("keys not applied to the span")
	}
}

func TestCanvas_PutTruncates(t *testing.T) {
	c := NewCanvas(6, 1, 0)
	c.Put(0, 0, 6, "Standup meeting", 1)
	if got := c.Text(0); got != "Stand…" {
		t.Fatalf("Text = %q", got)
	}
}

func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(6, 1, 0)
	c.Put(0, 0, 6, "会議x", 1)
	if got := c.Text(0); got != "会議x " {
		t.Fatalf("Text = %q", got)
	}

	// Overwriting the right half of a wide rune blanks its left half.
	c.Put(1, 0, 1, "y", 2)
	if got := c.Text(0); got != " y議x " {
		t.Fatalf("Text = %q", got)
	}
}

func TestCanvas_TruncatesBeforeWideRune(t *testing.T) {
	c := NewCanvas(4, 1, 0)
	c.Put(0, 0, 3, "ab会", 1)
	if got := c.Text(0); got != "ab… " {
		t.Fatalf("Text = %q", got)
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := NewCanvas(4, 2, 0)
	c.Put(0, -1, 4, "x", 1)
	c.Put(0, 2, 4, "x", 1)
	c.Put(2, 0, 4, "abcd", 1)
	if got := c.Text(0); got != "  ab" {
		t.Fatalf("Text = %q", got)
	}
	if got := c.Line(5, nil); got != "" {
		t.Fatalf("Line out of range = %q", got)
	}
}

func TestCanvas_LineGroupsRuns(t *testing.T) {
	c := NewCanvas(6, 1, "a")
	c.Fill(2, 0, 2, "b")

	var calls []string
	line := c.Line(0, func(k string) lipgloss.Style {
		calls = append(calls, k)
		return lipgloss.NewStyle()
	})
	if line != "      " {
		t.Fatalf("Line = %q", line)
	}
	if strings.Join(calls, "") != "aba" {
		t.Fatalf("runs = %v, want a b a", calls)
	}
}

func TestFit(t *testing.T) {
	got := Fit("ab\nabcdef\nx\nextra", 4, 3, lipgloss.Color("0"))
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for _, i := range []int{0, 2} {
		if w := lipgloss.Width(lines[i]); w != 4 {
			t.Errorf("line %d width = %d, want 4", i, w)
		}
	}
	if lipgloss.Width(lines[1]) != 6 {
		t.Errorf("overlong line changed: %q", lines[1])
	}
	if strings.Contains(got, "extra") {
		t.Error("lines past the height were kept")
	}
}

func TestFit_PadsMissingRows(t *testing.T) {
	lines := strings.Split(Fit("", 3, 2, lipgloss.Color("0")), "\n")
	if len(lines) != 2 || lipgloss.Width(lines[1]) != 3 {
		t.Fatalf("Fit = %q", lines)
	}
}

func TestMessage(t *testing.T) {
	got := Message(20, 5, "hi", lipgloss.Color("0"))
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if !strings.Contains(lines[2], "hi") {
		t.Errorf("message not on the middle row: %q", lines)
	}
}
