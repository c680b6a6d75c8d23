package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseAllocated parses a target duration and returns it in seconds.
// A bare integer counts minutes; anything else must be a Go duration
// such as "1h30m".
func ParseAllocated(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("allocated time is empty")
	}

	if minutes, err := strconv.ParseInt(input, 10, 64); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("allocated time cannot be negative")
		}
		if minutes > (1<<63-1)/60 {
			return 0, fmt.Errorf("allocated time %q is too large", input)
		}
		return minutes * 60, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid allocated time %q. Use minutes (e.g. 30) or a duration (e.g. 1h30m)", input)
	}
	if d < 0 {
		return 0, fmt.Errorf("allocated time cannot be negative")
	}
	return int64(d / time.Second), nil
}
