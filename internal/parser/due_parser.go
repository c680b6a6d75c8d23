package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dmyRegex      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks)$`)
)

// DateLayout is the stored due date format.
const DateLayout = "2006-01-02"

// ParseDueDate parses various due date formats and returns the date in
// DateLayout. Relative dates count from now.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-12-15")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - today, tomorrow
// - X days (e.g., "3 days", "1 day", "3d")
// - X weeks (e.g., "2 weeks", "1 week", "2w")
func ParseDueDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("due date is empty")
	}

	if d, err := time.Parse(DateLayout, input); err == nil {
		return d.Format(DateLayout), nil
	}

	// Try dd/mm/yyyy format
	if d, err := parseDateFormat(input); err == nil {
		return d.Format(DateLayout), nil
	} else if dmyRegex.MatchString(input) {
		return "", err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch input {
	case "today":
		return today.Format(DateLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(DateLayout), nil
	}

	// Try relative time formats
	if d, err := parseRelativeDate(input, today); err == nil {
		return d.Format(DateLayout), nil
	} else if relativeRegex.MatchString(input) {
		return "", err
	}

	return "", fmt.Errorf("invalid date format %q. Use: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days or X weeks", input)
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (time.Time, error) {
	matches := dmyRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	// Validate date ranges
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Check if date is valid (handles leap years, etc.)
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) || dueDate.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date %s", input)
	}

	return dueDate, nil
}

// parseRelativeDate parses "3 days", "2 weeks", "5d" and similar.
func parseRelativeDate(input string, today time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "d", "day", "days":
		if amount < 1 || amount > 365 { // Max 1 year in days
			return time.Time{}, fmt.Errorf("days must be between 1 and 365")
		}
		return today.AddDate(0, 0, amount), nil

	case "w", "week", "weeks":
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return today.AddDate(0, 0, amount*7), nil

	default:
		return time.Time{}, fmt.Errorf("unsupported time unit")
	}
}
