package pipeline

import (
	"errors"

	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/config"
)

// Per-file failure classes. A file failing one of these is reported and
// skipped; the batch always continues.
var (
	// ErrDecode marks files the image codec or ffprobe could not read.
	ErrDecode = errors.New("media decode failed")
	// ErrWrite marks results that could not be written out.
	ErrWrite = errors.New("result write failed")
)

// Options are the explicit, immutable knobs for one batch run. Limits use
// config.Unbounded (-1) to process everything; zero is honored as "none".
type Options struct {
	MaxImages int
	MaxVideos int

	PaletteSize      int
	VibrantThreshold float64
	StripHeight      int

	AnalyzeVolume bool
	ExtractTracks bool

	// Tool binaries; empty falls back to a PATH lookup
	FFmpegPath  string
	FFprobePath string
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{
		MaxImages:        config.Unbounded,
		MaxVideos:        config.Unbounded,
		PaletteSize:      5,
		VibrantThreshold: 0.5,
		StripHeight:      60,
		AnalyzeVolume:    true,
	}
}

// Report summarizes one batch run: how many files of each kind produced
// artifacts and how many were skipped with errors.
type Report struct {
	RunID string

	ImagesProcessed int
	ImagesSkipped   int
	VideosProcessed int
	VideosSkipped   int
}

// Result subdirectories, one per artifact type.
const (
	paletteDirName    = "color_palettes"
	videoLenDirName   = "video_length"
	audioDirName      = "audio_analysis"
	soundTrackDirName = "sound_extraction"
	insightsDirName   = "llm_insights"
)
