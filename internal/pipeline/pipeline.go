// Package pipeline orchestrates a batch run over a folder of ad creatives.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/ffmpeg"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/insights"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/palette"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/scanner"
	"github.com/Yash-Popcorn/applovin-market-intelligence/pkg/util"
)

// Pipeline runs every analysis stage for one batch of media files.
type Pipeline struct {
	logger   zerolog.Logger
	opts     Options
	ffmpeg   *ffmpeg.Executor // nil when the binaries are missing
	insights *insights.Client // nil when no API key is configured
}

// New builds a pipeline. A missing ffmpeg install disables video analysis
// (those files are reported as skipped) instead of failing the whole run.
func New(logger zerolog.Logger, opts Options, insightsClient *insights.Client) *Pipeline {
	if opts.PaletteSize < 1 {
		opts.PaletteSize = 5
	}
	if opts.StripHeight < 1 {
		opts.StripHeight = 60
	}

	p := &Pipeline{
		logger:   logger.With().Str("component", "pipeline").Logger(),
		opts:     opts,
		insights: insightsClient,
	}

	exec, err := ffmpeg.New(p.logger, opts.FFmpegPath, opts.FFprobePath)
	if err != nil {
		p.logger.Warn().Err(err).Msg("ffmpeg unavailable, video analysis disabled")
	} else {
		p.ffmpeg = exec
	}
	return p
}

// Run scans inputDir and writes one artifact set per file under resultsDir.
// Per-file failures are logged and counted; they never abort the batch.
func (p *Pipeline) Run(ctx context.Context, inputDir, resultsDir string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}

	entries, err := scanner.Scan(inputDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inputDir, err)
	}

	p.logger.Info().
		Str("run_id", report.RunID).
		Str("input", inputDir).
		Int("files", len(entries)).
		Msg("starting batch analysis")

	bar := progressbar.Default(int64(len(entries)), "analyzing media")
	imagesTaken, videosTaken := 0, 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		switch entry.Kind {
		case scanner.KindImage:
			if limitReached(imagesTaken, p.opts.MaxImages) {
				break
			}
			imagesTaken++
			if err := p.processImage(ctx, entry.Path, resultsDir); err != nil {
				p.logger.Warn().Err(err).Str("file", entry.Path).Msg("image skipped")
				report.ImagesSkipped++
			} else {
				report.ImagesProcessed++
			}
		case scanner.KindVideo:
			if limitReached(videosTaken, p.opts.MaxVideos) {
				break
			}
			videosTaken++
			if err := p.processVideo(ctx, entry.Path, resultsDir); err != nil {
				p.logger.Warn().Err(err).Str("file", entry.Path).Msg("video skipped")
				report.VideosSkipped++
			} else {
				report.VideosProcessed++
			}
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	p.logger.Info().
		Str("run_id", report.RunID).
		Int("images_processed", report.ImagesProcessed).
		Int("images_skipped", report.ImagesSkipped).
		Int("videos_processed", report.VideosProcessed).
		Int("videos_skipped", report.VideosSkipped).
		Msg("batch analysis complete")

	return report, nil
}

func limitReached(taken, limit int) bool {
	return limit >= 0 && taken >= limit
}

// processImage extracts the palette, logs the scored entries and writes the
// composite with the color strip appended.
func (p *Pipeline) processImage(ctx context.Context, path, resultsDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	samples := palette.SamplesFromImage(img)
	if len(samples) == 0 {
		return fmt.Errorf("%w: image has no opaque pixels", ErrDecode)
	}

	entries, err := palette.Analyze(samples, p.opts.PaletteSize)
	if err != nil {
		return fmt.Errorf("palette analysis of %s: %w", path, err)
	}

	for i, e := range entries {
		p.logger.Info().
			Str("file", filepath.Base(path)).
			Int("rank", i+1).
			Str("hex", "#"+e.Color.Hex()).
			Float64("saturation", e.Saturation).
			Float64("brightness", e.Brightness).
			Float64("vibrancy", e.Vibrancy).
			Msg("palette color")
	}

	summary, err := palette.Summarize(entries, p.opts.VibrantThreshold)
	if err != nil {
		return fmt.Errorf("palette summary of %s: %w", path, err)
	}
	p.logger.Info().
		Str("file", filepath.Base(path)).
		Float64("mean_saturation", summary.MeanSaturation).
		Float64("mean_brightness", summary.MeanBrightness).
		Float64("mean_vibrancy", summary.MeanVibrancy).
		Int("vibrant_colors", summary.VibrantCount).
		Msg("palette summary")

	composite := palette.RenderStrip(img, entries, p.opts.StripHeight)
	outPath, err := writeComposite(composite, format, resultsDir, util.Stem(path))
	if err != nil {
		return err
	}
	p.logger.Debug().Str("output", outPath).Msg("composite written")

	if p.insights != nil {
		p.writeInsights(ctx, path, resultsDir)
	}
	return nil
}

// writeInsights is best effort: a failed or unavailable LLM never fails the
// file whose palette artifact already exists.
func (p *Pipeline) writeInsights(ctx context.Context, path, resultsDir string) {
	report, err := p.insights.AnalyzeImage(ctx, path)
	if err != nil {
		p.logger.Warn().Err(err).Str("file", path).Msg("insight generation failed")
		return
	}

	dir := filepath.Join(resultsDir, insightsDirName)
	if err := util.EnsureDir(dir); err != nil {
		p.logger.Warn().Err(err).Msg("insight directory not writable")
		return
	}
	outPath := filepath.Join(dir, util.Stem(path)+".txt")
	if err := os.WriteFile(outPath, []byte(report+"\n"), 0644); err != nil {
		p.logger.Warn().Err(err).Str("output", outPath).Msg("insight write failed")
		return
	}
	p.logger.Debug().Str("output", outPath).Msg("insight written")
}

// processVideo probes the container and writes the duration text file, plus
// the optional loudness report and extracted soundtrack.
func (p *Pipeline) processVideo(ctx context.Context, path, resultsDir string) error {
	if p.ffmpeg == nil {
		return fmt.Errorf("%w: ffmpeg unavailable", ErrDecode)
	}

	info, err := p.ffmpeg.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	text := util.FormatDurationText(info.Duration)
	p.logger.Info().
		Str("file", filepath.Base(path)).
		Str("duration", text).
		Int("width", info.Width).
		Int("height", info.Height).
		Msg("video probed")

	dir := filepath.Join(resultsDir, videoLenDirName)
	if err := util.EnsureDir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	outPath := filepath.Join(dir, util.Stem(path)+".txt")
	if err := os.WriteFile(outPath, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if p.opts.AnalyzeVolume && info.HasAudio {
		p.writeVolumeReport(ctx, path, resultsDir)
	}
	if p.opts.ExtractTracks && info.HasAudio {
		p.extractSoundtrack(ctx, path, resultsDir)
	}
	return nil
}

// writeVolumeReport is best effort, like insights: the duration artifact is
// the contract, loudness is extra.
func (p *Pipeline) writeVolumeReport(ctx context.Context, path, resultsDir string) {
	stats, err := p.ffmpeg.AnalyzeVolume(ctx, path)
	if err != nil {
		p.logger.Warn().Err(err).Str("file", path).Msg("volume analysis failed")
		return
	}

	dir := filepath.Join(resultsDir, audioDirName)
	if err := util.EnsureDir(dir); err != nil {
		p.logger.Warn().Err(err).Msg("audio report directory not writable")
		return
	}
	outPath := filepath.Join(dir, util.Stem(path)+".txt")
	report := fmt.Sprintf("Mean Volume: %.2f dB\nMax Volume: %.2f dB\n", stats.MeanVolume, stats.MaxVolume)
	if err := os.WriteFile(outPath, []byte(report), 0644); err != nil {
		p.logger.Warn().Err(err).Str("output", outPath).Msg("audio report write failed")
	}
}

func (p *Pipeline) extractSoundtrack(ctx context.Context, path, resultsDir string) {
	dir := filepath.Join(resultsDir, soundTrackDirName)
	if err := util.EnsureDir(dir); err != nil {
		p.logger.Warn().Err(err).Msg("soundtrack directory not writable")
		return
	}
	outPath := filepath.Join(dir, util.Stem(path)+".wav")
	if err := p.ffmpeg.ExtractAudio(ctx, path, outPath, ffmpeg.DefaultWAVFormat()); err != nil {
		p.logger.Warn().Err(err).Str("file", path).Msg("soundtrack extraction failed")
	}
}
