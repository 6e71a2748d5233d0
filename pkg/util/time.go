package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDurationText renders a duration the way it is written into the
// video-length reports: whole seconds under a minute, otherwise minutes and
// seconds with the seconds part always present.
//
//	42s -> "42 seconds"
//	60s -> "1 minute 0 seconds"
//	63s -> "1 minute 3 seconds"
func FormatDurationText(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}

	if total < 60 {
		return fmt.Sprintf("%d %s", total, plural("second", total))
	}

	minutes := total / 60
	seconds := total % 60
	return fmt.Sprintf("%d %s %d %s",
		minutes, plural("minute", minutes),
		seconds, plural("second", seconds))
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// ParseFrameRate parses frame rate from ffprobe format (e.g. "30/1").
func ParseFrameRate(s string) float64 {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}
