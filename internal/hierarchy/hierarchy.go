// Package hierarchy implements the "::" naming rule shared by task
// listing and running-task queries.
package hierarchy

import "strings"

// Separator joins a parent task name and its child.
const Separator = "::"

// Matches reports whether name is filter itself or one of its descendants.
// An empty filter matches every name.
func Matches(name, filter string) bool {
	if filter == "" {
		return true
	}
	return name == filter || strings.HasPrefix(name, ChildPrefix(filter))
}

// ChildPrefix returns the prefix shared by every descendant of name.
func ChildPrefix(name string) string {
	return name + Separator
}

// Segments splits a name into its levels.
func Segments(name string) []string {
	return strings.Split(name, Separator)
}

// Parent returns the direct parent of name, if it has one.
func Parent(name string) (string, bool) {
	i := strings.LastIndex(name, Separator)
	if i < 0 {
		return "", false
	}
	return name[:i], true
}
