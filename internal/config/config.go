// Package config layers settings from a YAML file, FLASHCARDS_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables before they become keys.
const EnvPrefix = "FLASHCARDS_"

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by both programs.
type Config struct {
	Deck     string `koanf:"deck" validate:"required"`
	Driver   string `koanf:"driver" validate:"oneof=json sqlite"`
	ReposDir string `koanf:"repos_dir" validate:"required"`
	CSV      string `koanf:"csv"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// Defaults used when neither file, environment nor flags set a key.
const (
	DefaultDeck     = "flashcards.json"
	DefaultDriver   = "json"
	DefaultReposDir = "repos"
	DefaultCSV      = "examples.csv"
	DefaultLogLevel = "warn"
)

// RegisterFlags adds the flags every program understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warn or error")
}

// RegisterDeckFlags adds the flags of the scheduler-backed deck to fs.
func RegisterDeckFlags(fs *pflag.FlagSet) {
	fs.String("deck", DefaultDeck, "Path to the deck file")
	fs.String("driver", DefaultDriver, "Storage driver: json or sqlite")
	fs.String("repos-dir", DefaultReposDir, "Directory for cloned git sources")
}

// RegisterSessionFlags adds the flags of the interactive session to fs.
func RegisterSessionFlags(fs *pflag.FlagSet) {
	fs.String("csv", DefaultCSV, "Default CSV file offered when loading cards")
}

// Load builds a Config from the file named by --config, the environment and
// the parsed flag set. A config file that does not exist is ignored.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			slog.Debug("Config file not found, continuing without it", "path", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Unchanged flags only fill keys that are still unset, so their
	// defaults sit below the file and the environment.
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		return flagKey(f.Name), posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}

	cfg := Config{
		Deck:     DefaultDeck,
		Driver:   DefaultDriver,
		ReposDir: DefaultReposDir,
		CSV:      DefaultCSV,
		LogLevel: DefaultLogLevel,
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Logger returns a text slog.Logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// Level parses LogLevel, falling back to warn.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// envKey turns FLASHCARDS_LOG_LEVEL into log_level.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// flagKey turns log-level into log_level.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Setup loads the config and installs its logger as the slog default.
func Setup(flags *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(flags)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logger(os.Stderr))
	return cfg, nil
}
