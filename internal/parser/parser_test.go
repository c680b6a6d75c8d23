package parser

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		input string
		want  string
	}{
		{"2024-12-15", "2024-12-15"},
		{"15/12/2024", "2024-12-15"},
		{"1/2/2025", "2025-02-01"},
		{"29/02/2024", "2024-02-29"},
		{"today", "2024-03-10"},
		{"Tomorrow", "2024-03-11"},
		{"3 days", "2024-03-13"},
		{"1 day", "2024-03-11"},
		{"5d", "2024-03-15"},
		{"2 weeks", "2024-03-24"},
		{"1w", "2024-03-17"},
	}

	for _, tt := range tests {
		got, err := ParseDueDate(tt.input, now)
		if err != nil {
			t.Errorf("ParseDueDate(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDueDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "someday", "31/02/2024", "0/1/2024", "1/13/2024", "0 days", "400 days", "2024-13-01"} {
		if got, err := ParseDueDate(input, now); err == nil {
			t.Errorf("ParseDueDate(%q) = %q, expected error", input, got)
		}
	}
}

func TestParseAllocated(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"30", 1800},
		{"0", 0},
		{" 12 ", 720},
		{"1h30m", 5400},
		{"45s", 45},
		{"1500ms", 1},
	}

	for _, tt := range tests {
		got, err := ParseAllocated(tt.input)
		if err != nil {
			t.Errorf("ParseAllocated(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAllocated(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseAllocated_Invalid(t *testing.T) {
	for _, input := range []string{"", "-5", "-1h", "half an hour", "153722867280912931"} {
		if got, err := ParseAllocated(input); err == nil {
			t.Errorf("ParseAllocated(%q) = %d, expected error", input, got)
		}
	}
}

func TestValidateTaskName(t *testing.T) {
	for _, name := range []string{"task1", "task2::subtask", "task2::subtask::todo", "write report", "a:b"} {
		if err := ValidateTaskName(name); err != nil {
			t.Errorf("ValidateTaskName(%q): %v", name, err)
		}
	}

	for _, name := range []string{"", "   ", "::a", "a::", "a::::b", "a:: b", "a\tb"} {
		if err := ValidateTaskName(name); err == nil {
			t.Errorf("ValidateTaskName(%q) expected error", name)
		}
	}
}
