package parser

import (
	"fmt"
	"strings"

	"github.com/balkashynov/ttrackr/internal/hierarchy"
)

// ValidateTaskName checks that every "::" level of name is non-empty and
// has no surrounding whitespace.
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	for _, segment := range hierarchy.Segments(name) {
		if segment == "" {
			return fmt.Errorf("invalid task name %q: empty level around %q", name, hierarchy.Separator)
		}
		if strings.TrimSpace(segment) != segment {
			return fmt.Errorf("invalid task name %q: level %q has surrounding spaces", name, segment)
		}
		if strings.ContainsAny(segment, "\n\r\t") {
			return fmt.Errorf("invalid task name %q: control characters are not allowed", name)
		}
	}
	return nil
}
