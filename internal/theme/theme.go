package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name string

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// UI element colors
	Surface     lipgloss.Color
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Page content
	Link      lipgloss.Color
	LinkIndex lipgloss.Color
	Heading   lipgloss.Color
	Code      lipgloss.Color
	CodeBg    lipgloss.Color
	Quote     lipgloss.Color

	// Semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Navigation origin and action badges
	External     lipgloss.Color
	Programmatic lipgloss.Color
	Push         lipgloss.Color
	Replace      lipgloss.Color
	Pop          lipgloss.Color
}

var themes = map[string]Theme{
	"default": Default,
	"gruvbox": Gruvbox,
	"nord":    Nord,
}

var Default = Theme{
	Name:         "default",
	Primary:      lipgloss.Color("#7C3AED"),
	Secondary:    lipgloss.Color("#06B6D4"),
	Accent:       lipgloss.Color("#F59E0B"),
	Text:         lipgloss.Color("#E2E8F0"),
	TextDim:      lipgloss.Color("#64748B"),
	TextBright:   lipgloss.Color("#F8FAFC"),
	Surface:      lipgloss.Color("#1E293B"),
	Border:       lipgloss.Color("#334155"),
	BorderFocus:  lipgloss.Color("#7C3AED"),
	Link:         lipgloss.Color("#38BDF8"),
	LinkIndex:    lipgloss.Color("#F59E0B"),
	Heading:      lipgloss.Color("#A78BFA"),
	Code:         lipgloss.Color("#34D399"),
	CodeBg:       lipgloss.Color("#1E293B"),
	Quote:        lipgloss.Color("#94A3B8"),
	Error:        lipgloss.Color("#EF4444"),
	Warning:      lipgloss.Color("#F59E0B"),
	External:     lipgloss.Color("#F472B6"),
	Programmatic: lipgloss.Color("#22C55E"),
	Push:         lipgloss.Color("#3B82F6"),
	Replace:      lipgloss.Color("#F59E0B"),
	Pop:          lipgloss.Color("#A78BFA"),
}

var Gruvbox = Theme{
	Name:         "gruvbox",
	Primary:      lipgloss.Color("#D65D0E"),
	Secondary:    lipgloss.Color("#458588"),
	Accent:       lipgloss.Color("#D79921"),
	Text:         lipgloss.Color("#EBDBB2"),
	TextDim:      lipgloss.Color("#928374"),
	TextBright:   lipgloss.Color("#FBF1C7"),
	Surface:      lipgloss.Color("#3C3836"),
	Border:       lipgloss.Color("#504945"),
	BorderFocus:  lipgloss.Color("#D65D0E"),
	Link:         lipgloss.Color("#83A598"),
	LinkIndex:    lipgloss.Color("#FABD2F"),
	Heading:      lipgloss.Color("#FB4934"),
	Code:         lipgloss.Color("#B8BB26"),
	CodeBg:       lipgloss.Color("#3C3836"),
	Quote:        lipgloss.Color("#928374"),
	Error:        lipgloss.Color("#FB4934"),
	Warning:      lipgloss.Color("#FABD2F"),
	External:     lipgloss.Color("#D3869B"),
	Programmatic: lipgloss.Color("#B8BB26"),
	Push:         lipgloss.Color("#83A598"),
	Replace:      lipgloss.Color("#FABD2F"),
	Pop:          lipgloss.Color("#8EC07C"),
}

var Nord = Theme{
	Name:         "nord",
	Primary:      lipgloss.Color("#88C0D0"),
	Secondary:    lipgloss.Color("#81A1C1"),
	Accent:       lipgloss.Color("#EBCB8B"),
	Text:         lipgloss.Color("#ECEFF4"),
	TextDim:      lipgloss.Color("#4C566A"),
	TextBright:   lipgloss.Color("#ECEFF4"),
	Surface:      lipgloss.Color("#3B4252"),
	Border:       lipgloss.Color("#434C5E"),
	BorderFocus:  lipgloss.Color("#88C0D0"),
	Link:         lipgloss.Color("#88C0D0"),
	LinkIndex:    lipgloss.Color("#EBCB8B"),
	Heading:      lipgloss.Color("#81A1C1"),
	Code:         lipgloss.Color("#A3BE8C"),
	CodeBg:       lipgloss.Color("#3B4252"),
	Quote:        lipgloss.Color("#4C566A"),
	Error:        lipgloss.Color("#BF616A"),
	Warning:      lipgloss.Color("#EBCB8B"),
	External:     lipgloss.Color("#B48EAD"),
	Programmatic: lipgloss.Color("#A3BE8C"),
	Push:         lipgloss.Color("#5E81AC"),
	Replace:      lipgloss.Color("#D08770"),
	Pop:          lipgloss.Color("#8FBCBB"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
