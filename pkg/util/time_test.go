package util

import (
	"testing"
	"time"
)

func TestFormatDurationText(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{42, "42 seconds"},
		{59, "59 seconds"},
		{60, "1 minute 0 seconds"},
		{61, "1 minute 1 second"},
		{63, "1 minute 3 seconds"},
		{120, "2 minutes 0 seconds"},
		{3599, "59 minutes 59 seconds"},
		{3661, "61 minutes 1 second"},
	}

	for _, tt := range tests {
		got := FormatDurationText(time.Duration(tt.seconds) * time.Second)
		if got != tt.want {
			t.Errorf("FormatDurationText(%ds) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationTextTruncatesFractions(t *testing.T) {
	got := FormatDurationText(62500 * time.Millisecond)
	if got != "1 minute 2 seconds" {
		t.Errorf("FormatDurationText(62.5s) = %q, want %q", got, "1 minute 2 seconds")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"garbage", 0},
		{"25", 0},
	}
	for _, tt := range tests {
		if got := ParseFrameRate(tt.in); got != tt.want {
			t.Errorf("ParseFrameRate(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/data/ads/images/banner_01.png", "banner_01"},
		{"clip.mp4", "clip"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
