// Package config layers defaults, an optional TOML file, IMAGEKIT_*
// environment variables and command-line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nguyenthanhliemfc/imagekit/internal/preset"
	"github.com/nguyenthanhliemfc/imagekit/internal/transform"
)

const (
	EnvPrefix = "IMAGEKIT"
	FileName  = "imagekit"
)

// Keys as they appear in the config file. Environment variables use the
// upper-cased key with the IMAGEKIT_ prefix.
const (
	KeyLogLevel    = "log_level"
	KeyOutDir      = "out_dir"
	KeyPreset      = "preset"
	KeyResampler   = "resampler"
	KeyJPEGQuality = "jpeg_quality"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"log-level":    KeyLogLevel,
	"out-dir":      KeyOutDir,
	"preset":       KeyPreset,
	"resampler":    KeyResampler,
	"jpeg-quality": KeyJPEGQuality,
}

type Config struct {
	LogLevel    string
	OutDir      string
	Preset      string
	Resampler   string
	JPEGQuality int // 0 = take it from the preset
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutDir, ".")
	v.SetDefault(KeyPreset, preset.DefaultName)
	v.SetDefault(KeyResampler, "imaging")
	v.SetDefault(KeyJPEGQuality, 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in flags. Flags the set does not
// define are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ReadFile loads path, or searches for imagekit.toml in the working
// directory and $HOME/.config/imagekit when path is empty. A missing file is
// only an error when path was given explicitly. It returns the file used.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load reads the merged values and validates them.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		OutDir:      v.GetString(KeyOutDir),
		Preset:      strings.TrimSpace(v.GetString(KeyPreset)),
		Resampler:   strings.ToLower(strings.TrimSpace(v.GetString(KeyResampler))),
		JPEGQuality: v.GetInt(KeyJPEGQuality),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	// ParseLevel maps "" to NoLevel, which would hide the command's error.
	if c.LogLevel == "" {
		return fmt.Errorf("%s must not be empty", KeyLogLevel)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if strings.TrimSpace(c.OutDir) == "" {
		return fmt.Errorf("%s must not be empty", KeyOutDir)
	}
	if !preset.Known(c.Preset) {
		return fmt.Errorf("%s: unknown preset %q (want one of %s)",
			KeyPreset, c.Preset, strings.Join(preset.Names(), ", "))
	}
	if _, err := transform.ResamplerByName(c.Resampler); err != nil {
		return fmt.Errorf("%s: %w", KeyResampler, err)
	}
	if c.JPEGQuality != 0 && (c.JPEGQuality < 1 || c.JPEGQuality > 100) {
		return fmt.Errorf("%s: %d outside [1,100]", KeyJPEGQuality, c.JPEGQuality)
	}
	return nil
}

// Level returns the parsed log level. Call only on a validated Config.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Quality returns the configured JPEG quality, falling back to the preset.
func (c Config) Quality() int {
	if c.JPEGQuality > 0 {
		return c.JPEGQuality
	}
	return preset.Get(c.Preset).Quality
}
