package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/config"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/insights"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/logging"
	"github.com/Yash-Popcorn/applovin-market-intelligence/internal/pipeline"
)

var (
	cfgFile string
	verbose bool

	resultsDir  string
	maxImages   int
	maxVideos   int
	paletteSize int
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adintel",
	Short: "adintel - ad creative analysis toolkit",
	Long:  "Analyzes a folder of ad creatives: dominant color palettes for images, duration and audio reports for videos.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// .env carries the optional insights API key
		_ = godotenv.Load()

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg.Insights.APIKey = os.Getenv("OPENROUTER_API_KEY")

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	analyzeCmd.Flags().StringVar(&resultsDir, "results", "", "results directory (default from config)")
	analyzeCmd.Flags().IntVar(&maxImages, "max-images", config.Unbounded, "max images to process (-1 = all)")
	analyzeCmd.Flags().IntVar(&maxVideos, "max-videos", config.Unbounded, "max videos to process (-1 = all)")
	analyzeCmd.Flags().IntVar(&paletteSize, "palette-size", 0, "palette colors per image (default from config)")

	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input dir]",
	Short: "Analyze a folder of ad creatives",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		inputDir := cfg.InputDir
		if len(args) == 1 {
			inputDir = args[0]
		}
		outDir := cfg.ResultsDir
		if resultsDir != "" {
			outDir = resultsDir
		}

		opts := pipeline.Options{
			MaxImages:        cfg.MaxImages,
			MaxVideos:        cfg.MaxVideos,
			PaletteSize:      cfg.Palette.Size,
			VibrantThreshold: cfg.Palette.VibrantThreshold,
			StripHeight:      cfg.Palette.StripHeight,
			AnalyzeVolume:    cfg.Audio.AnalyzeVolume,
			ExtractTracks:    cfg.Audio.ExtractTracks,
			FFmpegPath:       cfg.FFmpegPath,
			FFprobePath:      cfg.FFprobePath,
		}
		if cmd.Flags().Changed("max-images") {
			opts.MaxImages = maxImages
		}
		if cmd.Flags().Changed("max-videos") {
			opts.MaxVideos = maxVideos
		}
		if paletteSize > 0 {
			opts.PaletteSize = paletteSize
		}

		var insightsClient *insights.Client
		if cfg.Insights.Enabled && cfg.Insights.APIKey != "" {
			insightsClient = insights.New(cfg.Insights.APIKey, cfg.Insights.Model, cfg.Insights.BaseURL)
		} else if cfg.Insights.Enabled {
			log.Warn().Msg("insights enabled but OPENROUTER_API_KEY not set, skipping")
		}

		pipe := pipeline.New(log.Logger, opts, insightsClient)
		report, err := pipe.Run(cmd.Context(), inputDir, outDir)
		if err != nil {
			return err
		}

		log.Info().
			Int("images_processed", report.ImagesProcessed).
			Int("images_skipped", report.ImagesSkipped).
			Int("videos_processed", report.VideosProcessed).
			Int("videos_skipped", report.VideosSkipped).
			Msg("analysis complete")

		return nil
	},
}
