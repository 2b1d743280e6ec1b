// Package input parses the TUI prompt line.
package input

import (
	"strings"
	"unicode"
)

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands are the slash commands understood by the prompt.
var Commands = []PromptCommand{
	{Name: "/day", Description: "Switch to the day view"},
	{Name: "/goto", Description: "Jump to a date (today, fri, 2025-01-08)"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/week", Description: "Switch to the week view"},
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// Command is a parsed slash command.
type Command struct {
	Name string // without the slash
	Arg  string
}

// ParseCommand splits "/name arg". ok is false when line is not a command.
func ParseCommand(line string) (cmd Command, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{}, false
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	return Command{
		Name: strings.ToLower(name),
		Arg:  strings.TrimSpace(arg),
	}, true
}

// Entry is a quick-add line: a title with an optional trailing time range.
type Entry struct {
	Title string
	Start string // HH:MM, empty when no range was given
	End   string
}

// HasRange reports whether the line carried a time range.
func (e Entry) HasRange() bool {
	return e.Start != ""
}

// ParseEntry splits "Standup 09:30-10:00" into title and range. A trailing
// token that does not look like a range stays part of the title.
func ParseEntry(line string) Entry {
	line = strings.TrimSpace(line)
	i := strings.LastIndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Entry{Title: line}
	}
	start, end, ok := splitRange(line[i+1:])
	if !ok {
		return Entry{Title: line}
	}
	return Entry{
		Title: strings.TrimSpace(line[:i]),
		Start: start,
		End:   end,
	}
}

func splitRange(s string) (start, end string, ok bool) {
	start, end, found := strings.Cut(s, "-")
	if !found || !isClock(start) || !isClock(end) {
		return "", "", false
	}
	return start, end, true
}

func isClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
