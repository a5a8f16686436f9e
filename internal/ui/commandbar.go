package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/theme"
)

// CommandType identifies the kind of command bar interaction.
type CommandType int

const (
	CommandNone   CommandType = iota
	CommandEx                 // : commands
	CommandFollow             // f link follow
)

// CommandResult is emitted when a command is submitted.
type CommandResult struct {
	Type  CommandType
	Value string
}

// CommandBar handles : commands and f link following. Tab completes
// command names and, for commands that take one, their argument.
type CommandBar struct {
	input      textinput.Model
	active     bool
	cmdType    CommandType
	width      int
	history    []string
	historyPos int

	commands []string
	args     map[string][]string
	matches  []string
	matchPos int
}

// NewCommandBar creates a new command bar.
func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.CharLimit = 256
	return CommandBar{input: ti, historyPos: -1}
}

// SetCompletions sets the command names Tab offers and, per command, the
// arguments it accepts (route paths for :goto, theme names for :theme).
func (c *CommandBar) SetCompletions(commands []string, args map[string][]string) {
	c.commands = slices.Sorted(slices.Values(commands))
	c.args = make(map[string][]string, len(args))
	for name, values := range args {
		c.args[name] = slices.Sorted(slices.Values(values))
	}
}

// Completions returns the lines the current input completes to.
func (c *CommandBar) Completions() []string {
	return complete(c.input.Value(), c.commands, c.args)
}

// SetWidth sets the command bar width.
func (c *CommandBar) SetWidth(w int) {
	c.width = w
	c.input.Width = w - 4
}

// Open activates the command bar in the given mode.
func (c *CommandBar) Open(ct CommandType) tea.Cmd {
	c.active = true
	c.cmdType = ct
	c.input.Reset()
	c.historyPos = -1
	c.matches = nil

	switch ct {
	case CommandEx:
		c.input.Placeholder = "goto PATH | go N | replace PATH | theme NAME | q (tab completes)"
		c.input.Prompt = ":"
	case CommandFollow:
		c.input.Placeholder = "link #"
		c.input.Prompt = "f"
	}
	return c.input.Focus()
}

// Close deactivates the command bar.
func (c *CommandBar) Close() {
	c.active = false
	c.cmdType = CommandNone
	c.input.Blur()
	c.input.Reset()
	c.matches = nil
}

// IsActive reports whether the command bar is open.
func (c *CommandBar) IsActive() bool { return c.active }

// Type returns the current command type.
func (c *CommandBar) Type() CommandType { return c.cmdType }

// SetValue pre-fills the input.
func (c *CommandBar) SetValue(val string) {
	c.input.SetValue(val)
	c.input.SetCursor(len(val))
}

// Submit closes the bar and returns what was typed. Ex commands are kept
// for recall with the arrow keys.
func (c *CommandBar) Submit() CommandResult {
	res := CommandResult{Type: c.cmdType, Value: strings.TrimSpace(c.input.Value())}
	if res.Value != "" && res.Type == CommandEx {
		c.history = append(c.history, res.Value)
	}
	c.Close()
	return res
}

// Update processes messages for the command bar. Enter is left to the
// caller, which calls Submit.
func (c *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	if !c.active {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Type != tea.KeyTab && msg.Type != tea.KeyShiftTab {
			c.matches = nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab:
			if c.cmdType == CommandEx {
				c.cycle(msg.Type == tea.KeyShiftTab)
			}
			return c, nil
		case tea.KeyEsc:
			c.Close()
			return c, nil
		case tea.KeyEnter:
			return c, nil
		case tea.KeyUp:
			if c.cmdType == CommandEx && len(c.history) > 0 {
				if c.historyPos < len(c.history)-1 {
					c.historyPos++
				}
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			}
			return c, nil
		case tea.KeyDown:
			switch {
			case c.cmdType == CommandEx && c.historyPos > 0:
				c.historyPos--
				c.SetValue(c.history[len(c.history)-1-c.historyPos])
			case c.historyPos == 0:
				c.historyPos = -1
				c.input.Reset()
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// cycle steps through the completions of the input as it was when Tab was
// first pressed.
func (c *CommandBar) cycle(backward bool) {
	if c.matches == nil {
		c.matches = c.Completions()
		if len(c.matches) == 0 {
			c.matches = nil
			return
		}
		c.matchPos = 0
		if backward {
			c.matchPos = len(c.matches) - 1
		}
	} else if backward {
		c.matchPos = (c.matchPos - 1 + len(c.matches)) % len(c.matches)
	} else {
		c.matchPos = (c.matchPos + 1) % len(c.matches)
	}
	c.SetValue(c.matches[c.matchPos])
}

// complete returns the full command lines value can be completed to. The
// first word completes against commands; the rest against the command's
// arguments.
func complete(value string, commands []string, args map[string][]string) []string {
	value = strings.TrimLeft(value, " ")
	name, arg, hasArg := strings.Cut(value, " ")

	var out []string
	if !hasArg {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, name) {
				if _, takesArg := args[cmd]; takesArg {
					out = append(out, cmd+" ")
				} else {
					out = append(out, cmd)
				}
			}
		}
		return out
	}

	arg = strings.TrimLeft(arg, " ")
	for _, candidate := range args[name] {
		if strings.HasPrefix(candidate, arg) || strings.HasPrefix(candidate, "/"+arg) {
			out = append(out, name+" "+candidate)
		}
	}
	return out
}

// View renders the command bar.
func (c *CommandBar) View() string {
	if !c.active {
		return ""
	}
	t := theme.Current
	line := c.input.View()
	if len(c.matches) > 1 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).
			Render(fmt.Sprintf("  [%d/%d]", c.matchPos+1, len(c.matches)))
		line += hint
	}
	return lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Width(c.width).
		Render(line)
}
