package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitsense/internal/logging"
	"bitsense/internal/round"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace state directory.
const DirName = ".bitsense"

// Input modes.
const (
	ModeLive   = "live"
	ModeSubmit = "submit"
)

// Config holds all bitsense configuration.
type Config struct {
	Round   RoundConfig   `yaml:"round"`
	Play    PlayConfig    `yaml:"play"`
	History HistoryConfig `yaml:"history"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`

	// env vars that replaced file values during Load
	overrides []string
}

// RoundConfig configures each generated round.
type RoundConfig struct {
	Bits      int    `yaml:"bits"`
	Direction string `yaml:"direction"`  // bin2hex, hex2bin, random
	TimeLimit string `yaml:"time_limit"` // Go duration, e.g. "10s"
}

// PlayConfig configures the interactive session.
type PlayConfig struct {
	Mode   string `yaml:"mode"`   // live, submit
	Rounds int    `yaml:"rounds"` // 0 = until quit
}

// HistoryConfig configures the round log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // relative paths resolve against the workspace
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
	FPS   int    `yaml:"fps"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Round: RoundConfig{
			Bits:      8,
			Direction: round.Random.String(),
			TimeLimit: "10s",
		},
		Play: PlayConfig{
			Mode: ModeLive,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(DirName, "history.db"),
		},
		UI: UIConfig{
			Theme: "auto",
			FPS:   30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		logging.ConfigDebug("parsed %s (%d bytes)", path, len(data))
	} else {
		logging.ConfigDebug("no config at %s, using defaults", path)
	}

	// Override with environment variables
	cfg.overrides = cfg.applyEnvOverrides()

	return cfg, nil
}

// Overrides returns the environment variables that replaced file values.
func (c *Config) Overrides() []string {
	return c.overrides
}

// LogSummary writes the effective settings to the config log.
// Load runs before logging is initialized, so callers invoke this afterwards.
func (c *Config) LogSummary(path string) {
	logging.ConfigInfo("config loaded from %s", path)
	logging.ConfigInfo("round: bits=%d direction=%s time_limit=%s mode=%s rounds=%d",
		c.Round.Bits, c.Round.Direction, c.Round.TimeLimit, c.Play.Mode, c.Play.Rounds)
	for _, name := range c.overrides {
		logging.ConfigDebug("override from %s=%q", name, os.Getenv(name))
	}
}

// LoadDotEnv loads a .env file from the workspace if one exists.
// Variables already set in the environment win.
func LoadDotEnv(workspace string) error {
	path := filepath.Join(workspace, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.ConfigInfo("config saved to %s", path)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Malformed numbers are left for Validate to report against the file value.
// Returns the names of the variables that were applied.
func (c *Config) applyEnvOverrides() []string {
	var applied []string
	if v := os.Getenv("BITSENSE_BITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Round.Bits = n
			applied = append(applied, "BITSENSE_BITS")
		} else {
			logging.ConfigDebug("ignoring BITSENSE_BITS=%q: %v", v, err)
		}
	}
	if v := os.Getenv("BITSENSE_DIRECTION"); v != "" {
		c.Round.Direction = v
		applied = append(applied, "BITSENSE_DIRECTION")
	}
	if v := os.Getenv("BITSENSE_TIME_LIMIT"); v != "" {
		c.Round.TimeLimit = v
		applied = append(applied, "BITSENSE_TIME_LIMIT")
	}
	if v := os.Getenv("BITSENSE_MODE"); v != "" {
		c.Play.Mode = strings.ToLower(v)
		applied = append(applied, "BITSENSE_MODE")
	}
	if v := os.Getenv("BITSENSE_DB"); v != "" {
		c.History.Path = v
		applied = append(applied, "BITSENSE_DB")
	}
	if v := os.Getenv("BITSENSE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
			applied = append(applied, "BITSENSE_DEBUG")
		} else {
			logging.ConfigDebug("ignoring BITSENSE_DEBUG=%q: %v", v, err)
		}
	}
	return applied
}

// GetFrameInterval returns the UI refresh interval.
func (c *Config) GetFrameInterval() time.Duration {
	fps := c.UI.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// HistoryPath resolves the history database path against workspace.
func (c *Config) HistoryPath(workspace string) string {
	if c.History.Path == "" || filepath.IsAbs(c.History.Path) || c.History.Path == ":memory:" {
		return c.History.Path
	}
	return filepath.Join(workspace, c.History.Path)
}

// ToRoundConfig converts the round section into engine form.
func (c *Config) ToRoundConfig() (round.Config, error) {
	limit, err := time.ParseDuration(c.Round.TimeLimit)
	if err != nil {
		return round.Config{}, fmt.Errorf("invalid round.time_limit %q: %w", c.Round.TimeLimit, err)
	}
	dir, err := round.ParseDirection(c.Round.Direction)
	if err != nil {
		return round.Config{}, err
	}
	cfg := round.Config{TimeLimit: limit, BitWidth: c.Round.Bits, Direction: dir}
	if err := round.ValidateConfig(cfg); err != nil {
		return round.Config{}, err
	}
	return cfg, nil
}

// ValidModes lists the supported input modes.
var ValidModes = []string{ModeLive, ModeSubmit}

// ValidThemes lists the supported UI themes.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.ToRoundConfig(); err != nil {
		return err
	}
	if !contains(ValidModes, c.Play.Mode) {
		return fmt.Errorf("invalid play.mode: %q (valid: %v)", c.Play.Mode, ValidModes)
	}
	if c.Play.Rounds < 0 {
		return fmt.Errorf("play.rounds must not be negative, got %d", c.Play.Rounds)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path required when history is enabled")
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %q (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.UI.FPS < 0 || c.UI.FPS > 120 {
		return fmt.Errorf("ui.fps must be between 0 and 120, got %d", c.UI.FPS)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
