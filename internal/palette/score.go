package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultVibrantThreshold marks the vibrancy above which a color is counted
// as vibrant in a summary.
const DefaultVibrantThreshold = 0.5

// Summary aggregates the metrics of a whole palette.
type Summary struct {
	MeanSaturation float64
	MeanBrightness float64
	MeanVibrancy   float64
	VibrantCount   int
}

// Score converts a color to HSV and derives its three salience metrics.
// Saturation is the HSV S channel, brightness the HSV V channel, and
// vibrancy their product clipped to [0,1]: a color pops visually only when
// it is both colorful and not too dark or washed-out.
func Score(c Color) (saturation, brightness, vibrancy float64) {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	_, saturation, brightness = col.Hsv()

	vibrancy = saturation * brightness
	if vibrancy < 0 {
		vibrancy = 0
	}
	if vibrancy > 1 {
		vibrancy = 1
	}
	return saturation, brightness, vibrancy
}

// Analyze extracts a k-color palette from samples and fills in the metrics
// of every entry.
func Analyze(samples []Color, k int) ([]Entry, error) {
	entries, err := Extract(samples, k)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Saturation, entries[i].Brightness, entries[i].Vibrancy = Score(entries[i].Color)
	}
	return entries, nil
}

// Summarize reduces scored entries to their mean metrics and the count of
// entries at or above the vibrant threshold.
func Summarize(entries []Entry, vibrantThreshold float64) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, fmt.Errorf("%w: no entries to summarize", ErrInvalidInput)
	}

	var s Summary
	for _, e := range entries {
		s.MeanSaturation += e.Saturation
		s.MeanBrightness += e.Brightness
		s.MeanVibrancy += e.Vibrancy
		if e.Vibrancy >= vibrantThreshold {
			s.VibrantCount++
		}
	}
	n := float64(len(entries))
	s.MeanSaturation /= n
	s.MeanBrightness /= n
	s.MeanVibrancy /= n
	return s, nil
}
