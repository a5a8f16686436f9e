package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vidyasagar/spanav/internal/router"
)

var errUsage = errors.New("usage")

// command is a parsed : command.
type command struct {
	name string
	arg  string
	n    int
}

// commandHelp lists the : commands shown by :help.
var commandHelp = []struct{ usage, desc string }{
	{":goto PATH", "push PATH under the basename"},
	{":push HREF", "push a platform href through the navigator"},
	{":replace PATH", "replace the current entry with PATH under the basename"},
	{":go N", "move N entries through the stack"},
	{":back / :forward", "simulate the user's back and forward gestures"},
	{":theme [NAME]", "show or switch the colour theme"},
	{":clear", "forget the saved session"},
	{":help", "list commands"},
	{":q", "quit"},
}

// commandNames are the commands offered by Tab completion.
var commandNames = []string{
	"back", "clear", "forward", "go", "goto", "help",
	"push", "quit", "reload", "replace", "theme",
}

// completionArgs maps each command that takes an argument to the values Tab
// offers for it. Route paths are application paths for :goto and :replace
// and platform hrefs for :push.
func completionArgs(routes []string, basename string, themes []string) map[string][]string {
	hrefs := make([]string, len(routes))
	for i, p := range routes {
		hrefs[i] = router.JoinBasename(basename, p)
	}
	return map[string][]string{
		"go":      nil,
		"goto":    routes,
		"replace": routes,
		"push":    hrefs,
		"theme":   themes,
	}
}

func parseCommand(input string) (command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return command{}, errUsage
	}
	cmd := command{name: fields[0], arg: strings.Join(fields[1:], " ")}

	switch cmd.name {
	case "q", "quit":
		cmd.name = "quit"
	case "go":
		if cmd.arg == "" {
			return command{}, fmt.Errorf("%w: :go N", errUsage)
		}
		n, err := strconv.Atoi(cmd.arg)
		if err != nil {
			return command{}, fmt.Errorf("invalid delta %q", cmd.arg)
		}
		cmd.n = n
	case "goto", "push", "replace":
		if cmd.arg == "" {
			return command{}, fmt.Errorf("%w: :%s PATH", errUsage, cmd.name)
		}
		if !strings.HasPrefix(cmd.arg, "/") {
			cmd.arg = "/" + cmd.arg
		}
	case "back", "forward", "theme", "clear", "help", "reload":
	default:
		return command{}, fmt.Errorf("unknown command: %s", cmd.name)
	}
	return cmd, nil
}

// parseLinkNumber parses the argument of f.
func parseLinkNumber(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid link number: %s", input)
	}
	return n, nil
}
