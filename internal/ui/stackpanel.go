package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/spanav/internal/history"
	"github.com/vidyasagar/spanav/internal/theme"
)

// StackPanel lists the session history stack with vim-style navigation.
// Selecting an entry travels to it relative to the current position.
type StackPanel struct {
	entries []history.Location
	current int
	cursor  int
	offset  int
	width   int
	height  int
	visible bool
}

// NewStackPanel creates a hidden stack panel.
func NewStackPanel() StackPanel {
	return StackPanel{}
}

// SetStack replaces the entries shown and marks the current one.
func (sp *StackPanel) SetStack(entries []history.Location, current int) {
	sp.entries = entries
	sp.current = current
	if sp.cursor >= len(entries) {
		sp.cursor = max(len(entries)-1, 0)
	}
	sp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (sp *StackPanel) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Show makes the panel visible with the cursor on the current entry.
func (sp *StackPanel) Show() {
	sp.visible = true
	sp.cursor = sp.current
	sp.ensureVisible()
}

// Hide closes the panel.
func (sp *StackPanel) Hide() { sp.visible = false }

// IsVisible reports whether the panel is shown.
func (sp *StackPanel) IsVisible() bool { return sp.visible }

// CursorUp moves the cursor to the previous entry.
func (sp *StackPanel) CursorUp() {
	if sp.cursor > 0 {
		sp.cursor--
		sp.ensureVisible()
	}
}

// CursorDown moves the cursor to the next entry.
func (sp *StackPanel) CursorDown() {
	if sp.cursor < len(sp.entries)-1 {
		sp.cursor++
		sp.ensureVisible()
	}
}

// Cursor returns the cursor index.
func (sp *StackPanel) Cursor() int { return sp.cursor }

// Delta returns the travel distance from the current entry to the cursor.
func (sp *StackPanel) Delta() int { return sp.cursor - sp.current }

func (sp *StackPanel) visibleCount() int {
	return max(sp.height-3, 1)
}

func (sp *StackPanel) ensureVisible() {
	visible := sp.visibleCount()
	if sp.cursor < sp.offset {
		sp.offset = sp.cursor
	}
	if sp.cursor >= sp.offset+visible {
		sp.offset = sp.cursor - visible + 1
	}
	if sp.offset < 0 {
		sp.offset = 0
	}
}

// View renders the panel.
func (sp *StackPanel) View() string {
	if !sp.visible {
		return ""
	}
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(sp.width).
		Padding(0, 1)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text).Width(sp.width).Padding(0, 1)
	cursorStyle := rowStyle.Foreground(t.TextBright).Background(t.BorderFocus).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Italic(true).Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Session stack (%d)", len(sp.entries))))
	sb.WriteString("\n")

	end := min(sp.offset+sp.visibleCount(), len(sp.entries))
	for i := sp.offset; i < end; i++ {
		loc := sp.entries[i]
		marker := "  "
		if i == sp.current {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%2d  %s  %s", marker, i-sp.current, history.CreatePath(loc.Path), keyStyle.Render(shortKey(loc.Key)))
		if i == sp.cursor {
			sb.WriteString(cursorStyle.Render(line))
		} else {
			sb.WriteString(rowStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(hintStyle.Render("j/k:move  Enter:go  Esc:close"))
	return lipgloss.NewStyle().Width(sp.width).Height(sp.height).Render(sb.String())
}
