package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/history"
	"github.com/vidyasagar/spanav/internal/theme"
)

// StatusBar shows the mode, the page title and how the current location was
// reached.
type StatusBar struct {
	mode       string
	title      string
	action     history.Action
	origin     history.Origin
	key        string
	position   string
	scrollInfo string
	message    string
	isError    bool
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{mode: "NORMAL"}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) { s.width = w }

// SetMode sets the mode indicator (NORMAL, ADDRESS, COMMAND, FOLLOW, STACK).
func (s *StatusBar) SetMode(mode string) { s.mode = mode }

// SetTitle sets the page title.
func (s *StatusBar) SetTitle(title string) { s.title = title }

// SetNavigation records the action, origin and key of the current location.
func (s *StatusBar) SetNavigation(action history.Action, origin history.Origin, key string) {
	s.action = action
	s.origin = origin
	s.key = key
}

// SetPosition sets the stack position, e.g. "2/5".
func (s *StatusBar) SetPosition(index, length int) {
	s.position = fmt.Sprintf("%d/%d", index+1, length)
}

// SetScrollInfo sets the scroll position string.
func (s *StatusBar) SetScrollInfo(info string) { s.scrollInfo = info }

// SetMessage shows a transient message in place of the title.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError shows a transient error in place of the title.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// Message returns the transient message, if any.
func (s *StatusBar) Message() string { return s.message }

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	badge := func(text string, bg lipgloss.Color) string {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Surface).
			Background(bg).
			Padding(0, 1).
			Render(text)
	}

	mode := badge(s.mode, t.Primary)

	var left string
	leftStyle := lipgloss.NewStyle().Background(t.Surface).Padding(0, 1)
	switch {
	case s.message != "" && s.isError:
		left = leftStyle.Foreground(t.Error).Render(s.message)
	case s.message != "":
		left = leftStyle.Foreground(t.Warning).Render(s.message)
	default:
		left = leftStyle.Foreground(t.Text).Render(s.title)
	}

	var right string
	if s.action != "" {
		right += badge(string(s.action), actionColor(t, s.action))
		c := t.External
		if s.origin == history.OriginProgrammatic {
			c = t.Programmatic
		}
		right += badge(s.origin.String(), c)
	}
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Padding(0, 1)
	if s.key != "" {
		right += dim.Render(shortKey(s.key))
	}
	if s.position != "" {
		right += dim.Render(s.position)
	}
	if s.scrollInfo != "" {
		right += dim.Render(s.scrollInfo)
	}

	spacer := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacer < 0 {
		spacer = 0
	}
	fill := lipgloss.NewStyle().Background(t.Surface).Render(fmt.Sprintf("%*s", spacer, ""))

	return mode + left + fill + right
}

func actionColor(t theme.Theme, a history.Action) lipgloss.Color {
	switch a {
	case history.ActionPush:
		return t.Push
	case history.ActionReplace:
		return t.Replace
	default:
		return t.Pop
	}
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
