package cmd

import (
	"strings"

	"github.com/octoglue/octoglue/internal/resolve"
)

// suggestCommand finds the closest command name to the unknown input.
// Returns empty string if nothing is close.
func suggestCommand(unknown string, commands []string) string {
	if suggestions := resolve.Suggest(unknown, commands, 1); len(suggestions) > 0 {
		return suggestions[0]
	}
	return ""
}

// suggestFlag finds the closest flag name to the unknown input.
// Strips leading dashes from both the input and the known flags for comparison,
// but returns the match with its original prefix.
func suggestFlag(unknown string, flags []string) string {
	stripped := strings.TrimLeft(unknown, "-")
	if stripped == "" {
		return ""
	}
	bestDist := 4 // only suggest if distance <= 3
	bestMatch := ""
	for _, f := range flags {
		d := resolve.Distance(stripped, strings.TrimLeft(f, "-"))
		if d < bestDist {
			bestDist = d
			bestMatch = f
		}
	}
	return bestMatch
}
