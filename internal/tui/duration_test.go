package tui

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		short   bool
		want    string
	}{
		{0, false, "zero"},
		{1, false, "1 second"},
		{5, false, "5 seconds"},
		{5, true, "5 seconds"},
		{60, true, "1 minute"},
		{70, false, "1 minute 10 seconds"},
		{130, true, "2 minutes"},
		{8228, true, "2 hours 17 minutes"},
		{8228, false, "2 hours 17 minutes 8 seconds"},
		{104520, true, "1 day 5 hours 2 minutes"},
		{104520, false, "1 day 5 hours 2 minutes"},
		{1473120, false, "17 days 1 hour 12 minutes"},
		{-90, false, "-1 minute 30 seconds"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds, tt.short, "zero"); got != tt.want {
			t.Errorf("FormatDuration(%d, %v) = %q, want %q", tt.seconds, tt.short, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int64]string{
		0:      "00:00",
		59:     "00:59",
		61:     "01:01",
		3600:   "01:00:00",
		363599: "100:59:59",
		-4:     "00:00",
	}
	for seconds, want := range tests {
		if got := FormatClock(seconds); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", seconds, got, want)
		}
	}
}
