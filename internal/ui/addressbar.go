package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/theme"
)

// AddressBar shows the current application path and accepts a new one.
type AddressBar struct {
	input    textinput.Model
	active   bool
	width    int
	basename string
	current  string
}

// NewAddressBar creates an address bar for the given basename.
func NewAddressBar(basename string) AddressBar {
	ti := textinput.New()
	ti.Placeholder = "/path"
	ti.CharLimit = 1024
	ti.Prompt = ""

	return AddressBar{input: ti, basename: basename}
}

// SetWidth updates the bar width.
func (a *AddressBar) SetWidth(w int) {
	a.width = w
	a.input.Width = w - 8
}

// SetCurrent sets the path shown while the bar is not being edited.
func (a *AddressBar) SetCurrent(path string) {
	a.current = path
}

// Focus starts editing, pre-filled with the current path.
func (a *AddressBar) Focus() tea.Cmd {
	a.active = true
	a.input.SetValue(a.current)
	a.input.CursorEnd()
	return a.input.Focus()
}

// Blur stops editing.
func (a *AddressBar) Blur() {
	a.active = false
	a.input.Blur()
	a.input.Reset()
}

// IsActive reports whether the bar is being edited.
func (a *AddressBar) IsActive() bool {
	return a.active
}

// Value returns the text being edited.
func (a *AddressBar) Value() string {
	return a.input.Value()
}

// Update handles messages while editing.
func (a *AddressBar) Update(msg tea.Msg) (*AddressBar, tea.Cmd) {
	if !a.active {
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the bar.
func (a *AddressBar) View() string {
	t := theme.Current

	border := t.Border
	fg := t.TextDim
	if a.active {
		border = t.BorderFocus
		fg = t.Text
	}

	barStyle := lipgloss.NewStyle().
		Foreground(fg).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(a.width-2, 10))

	baseStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	if a.basename == "/" {
		baseStyle = baseStyle.Faint(true)
	}

	body := a.current
	if a.active {
		body = a.input.View()
	}
	return barStyle.Render(baseStyle.Render(a.basename) + " " + body)
}
