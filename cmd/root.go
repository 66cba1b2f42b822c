package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
	"github.com/nguyenthanhliemfc/imagekit/internal/config"
	"github.com/nguyenthanhliemfc/imagekit/internal/preset"
	"github.com/nguyenthanhliemfc/imagekit/internal/transform"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
	reportPath string
)

// app is populated by the root PersistentPreRunE before any subcommand runs.
var app struct {
	cfg         config.Config
	preset      preset.Preset
	codec       codec.Codec
	transformer *transform.Transformer
}

var logger = newLogger(os.Stderr, zerolog.InfoLevel)

var rootCmd = &cobra.Command{
	Use:   "imagekit",
	Short: "Reduce JPEG quality, resize and scale images",
	Long: `imagekit re-encodes a single JPEG/PNG/GIF/BMP/TIFF/WebP image.

  reduce  re-encode as JPEG at a given quality
  resize  resample to an exact width and height (nearest neighbour)
  scale   resize by a percentage of the original dimensions

Outputs are JPEG or PNG. Without -o, files are written to the output
directory with content-addressed names: <name>.<w>.<h>.<hash>.ext`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error().Err(err).Msg("command failed")
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: ./imagekit.toml, ~/.config/imagekit/imagekit.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("out-dir", ".", "directory for outputs written without -o")
	pf.String("preset", preset.DefaultName, fmt.Sprintf("defaults for format and quality %v", preset.Names()))
	pf.String("resampler", "imaging", fmt.Sprintf("nearest-neighbour implementation %v", transform.ResamplerNames))
	pf.Int("jpeg-quality", 0, "JPEG quality for resize/scale output (0 = preset quality)")
	pf.StringVar(&reportPath, "report", "", "write a JSON report of the run to this path")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imagekit %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads configuration and builds the transformer shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	v := config.New()
	used, err := config.ReadFile(v, configPath)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level := cfg.Level()
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	if used != "" {
		logger.Debug().Str("file", used).Msg("config loaded")
	}

	resampler, err := transform.ResamplerByName(cfg.Resampler)
	if err != nil {
		return err
	}

	registry := codec.NewRegistry()
	c := codec.NewImagingWithRegistry(registry)
	t, err := transform.New(c,
		transform.WithResampler(resampler),
		transform.WithJPEGQuality(cfg.Quality()),
	)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.preset = preset.Get(cfg.Preset)
	app.codec = c
	app.transformer = t

	logger.Debug().
		Str("preset", app.preset.Name).
		Str("resampler", cfg.Resampler).
		Int("jpeg_quality", cfg.Quality()).
		Str("out_dir", cfg.OutDir).
		Str("registry", registry.String()).
		Msg("configured")
	return nil
}
