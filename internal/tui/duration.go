package tui

import (
	"fmt"
	"strings"
)

var durationUnits = []struct {
	name    string
	seconds int64
}{
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// FormatDuration renders seconds as "1 day 5 hours 2 minutes". With
// short set, seconds are dropped once the duration exceeds a minute.
// Zero renders as zeroText.
func FormatDuration(seconds int64, short bool, zeroText string) string {
	if seconds == 0 {
		return zeroText
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	var parts []string
	remainder := seconds
	for _, unit := range durationUnits {
		if unit.seconds == 1 && short && seconds > 60 {
			break
		}
		if remainder < unit.seconds {
			continue
		}
		n := remainder / unit.seconds
		remainder %= unit.seconds
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize(unit.name, n)))
	}

	return sign + strings.Join(parts, " ")
}

// FormatClock renders seconds as MM:SS, or HH:MM:SS from one hour up.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

func pluralize(unit string, n int64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
