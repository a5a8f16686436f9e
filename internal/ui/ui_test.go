package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vidyasagar/spanav/internal/history"
)

func stack(paths ...string) []history.Location {
	out := make([]history.Location, len(paths))
	for i, p := range paths {
		out[i] = history.Location{Path: history.Path{Pathname: p}, Key: p}
	}
	return out
}

func TestStackPanelDelta(t *testing.T) {
	sp := NewStackPanel()
	sp.SetSize(40, 10)
	sp.SetStack(stack("/", "/a", "/b", "/c"), 2)
	sp.Show()

	assert.Equal(t, 2, sp.Cursor())
	assert.Equal(t, 0, sp.Delta())

	sp.CursorUp()
	sp.CursorUp()
	assert.Equal(t, -2, sp.Delta())
	sp.CursorUp()
	assert.Equal(t, 0, sp.Cursor(), "cursor stops at the oldest entry")

	for i := 0; i < 10; i++ {
		sp.CursorDown()
	}
	assert.Equal(t, 1, sp.Delta())
	assert.Contains(t, sp.View(), "/c")
}

func TestStackPanelShrinkingStackClampsCursor(t *testing.T) {
	sp := NewStackPanel()
	sp.SetStack(stack("/", "/a", "/b"), 2)
	sp.Show()
	sp.SetStack(stack("/"), 0)
	assert.Equal(t, 0, sp.Cursor())
}

func TestStackPanelHidden(t *testing.T) {
	sp := NewStackPanel()
	assert.False(t, sp.IsVisible())
	assert.Empty(t, sp.View())
}

func TestCommandBarSubmit(t *testing.T) {
	c := NewCommandBar()
	c.Open(CommandEx)
	c.SetValue("  push /about ")

	res := c.Submit()
	assert.Equal(t, CommandResult{Type: CommandEx, Value: "push /about"}, res)
	assert.False(t, c.IsActive())

	c.Open(CommandEx)
	c.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "push /about", c.Submit().Value, "ex history is recalled")
}

func TestCommandBarEscCloses(t *testing.T) {
	c := NewCommandBar()
	c.Open(CommandFollow)
	assert.Equal(t, CommandFollow, c.Type())
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, c.IsActive())
	assert.Equal(t, CommandNone, c.Type())
}

var (
	completionCommands = []string{"theme", "goto", "go", "back"}
	completionArgs     = map[string][]string{
		"go":    nil,
		"goto":  {"/about", "/"},
		"theme": {"nord", "default"},
	}
)

func TestCommandCompletion(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"back", "go ", "goto ", "theme "}},
		{"go", []string{"go ", "goto "}},
		{"got", []string{"goto "}},
		{"goto ", []string{"goto /", "goto /about"}},
		{"goto /a", []string{"goto /about"}},
		{"goto a", []string{"goto /about"}},
		{"theme n", []string{"theme nord"}},
		{"back x", nil},
		{"zz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := NewCommandBar()
			c.SetCompletions(completionCommands, completionArgs)
			c.Open(CommandEx)
			c.SetValue(tt.input)
			assert.Equal(t, tt.want, c.Completions())
		})
	}
}

func TestCommandBarTabCycles(t *testing.T) {
	c := NewCommandBar()
	c.SetCompletions(completionCommands, completionArgs)
	c.Open(CommandEx)
	c.SetValue("goto ")

	tab := tea.KeyMsg{Type: tea.KeyTab}
	c.Update(tab)
	assert.Equal(t, "goto /", c.input.Value())
	c.Update(tab)
	assert.Equal(t, "goto /about", c.input.Value())
	c.Update(tab)
	assert.Equal(t, "goto /", c.input.Value())
	c.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "goto /about", c.input.Value())

	// Typing starts a new completion from the edited input.
	c.SetValue("th")
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	c.Update(tab)
	assert.Equal(t, "theme ", c.input.Value())

	assert.Equal(t, "theme", c.Submit().Value)
}

func TestCommandBarFollowIgnoresTab(t *testing.T) {
	c := NewCommandBar()
	c.SetCompletions(completionCommands, completionArgs)
	c.Open(CommandFollow)
	c.SetValue("1")
	c.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "1", c.input.Value())
}

func TestStatusBarPosition(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(80)
	s.SetPosition(1, 3)
	s.SetNavigation(history.ActionPush, history.OriginProgrammatic, "0123456789")
	out := s.View()
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "programmatic")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
}
