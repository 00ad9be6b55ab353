// Package logging provides config-driven categorized file-based logging for bitsense.
// Logs are written to .bitsense/logs/ with separate files per category.
// Logging is controlled by logging.debug_mode in the config - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryRound   Category = "round"   // Round engine transitions
	CategorySession Category = "session" // Session stats and round chaining
	CategoryHistory Category = "history" // History store operations
	CategoryTUI     Category = "tui"     // Terminal UI events
	CategoryConfig  Category = "config"  // Config load/save
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryBoot,
	CategoryRound,
	CategorySession,
	CategoryHistory,
	CategoryTUI,
	CategoryConfig,
}

// Config mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Config struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

type entry struct {
	logger *zap.Logger
	file   *os.File
}

var (
	loggers   = make(map[Category]*entry)
	loggersMu sync.RWMutex
	logsDir   string
	config    Config
	configMu  sync.RWMutex
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	nop       = zap.NewNop()
)

// Initialize sets up the logging directory under workspace.
// Should be called once at startup, before any logger is requested.
func Initialize(workspace string, cfg Config) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	configMu.Lock()
	config = cfg
	configMu.Unlock()
	level.SetLevel(ParseLevel(cfg.Level))

	if !cfg.DebugMode {
		setLogsDir("")
		return nil // Silent no-op in production mode
	}

	dir := filepath.Join(workspace, ".bitsense", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	setLogsDir(dir)

	Boot("=== bitsense logging initialized ===")
	Boot("Workspace: %s", workspace)
	Boot("Log level: %s", level.Level())
	if len(cfg.Categories) == 0 {
		Boot("All categories enabled (no category filter)")
	} else {
		for _, cat := range AllCategories {
			BootDebug("Category '%s': %v", cat, IsCategoryEnabled(cat))
		}
	}
	return nil
}

func setLogsDir(dir string) {
	loggersMu.Lock()
	logsDir = dir
	loggersMu.Unlock()
}

// LogsDir returns the directory log files are written to, or "" when disabled.
func LogsDir() string {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	return logsDir
}

// ParseLevel maps a config level name to a zap level. Unknown names mean info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !config.DebugMode {
		return false
	}
	if config.Categories == nil {
		return true
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Logger returns (or creates) the zap logger for a category.
// Returns a no-op logger if debug mode or the category is disabled.
func Logger(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return nop
	}

	loggersMu.RLock()
	if e, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return e.logger
	}
	dirSet := logsDir != ""
	loggersMu.RUnlock()
	if !dirSet {
		return nop
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if e, ok := loggers[category]; ok {
		return e.logger
	}

	// Date prefix for easy rotation
	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	path := filepath.Join(logsDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return nop
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(file), level)
	e := &entry{logger: zap.New(core).Named(string(category)), file: file}
	loggers[category] = e
	return e.logger
}

// Get returns a printf-style logger for a category.
func Get(category Category) *zap.SugaredLogger {
	return Logger(category).Sugar()
}

func newEncoder() zapcore.Encoder {
	configMu.RLock()
	jsonFormat := config.JSONFormat
	configMu.RUnlock()

	if jsonFormat {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "ts"
		enc.EncodeTime = zapcore.EpochMillisTimeEncoder
		return zapcore.NewJSONEncoder(enc)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(enc)
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, e := range loggers {
		_ = e.logger.Sync()
		if e.file != nil {
			e.file.Close()
		}
	}
	loggers = make(map[Category]*entry)
}

// NewConsole builds the stderr logger used by non-interactive subcommands.
func NewConsole(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Infof(format, args...) }
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debugf(format, args...) }

func Session(format string, args ...interface{})      { Get(CategorySession).Infof(format, args...) }
func SessionDebug(format string, args ...interface{}) { Get(CategorySession).Debugf(format, args...) }
func SessionWarn(format string, args ...interface{})  { Get(CategorySession).Warnf(format, args...) }

func History(format string, args ...interface{})      { Get(CategoryHistory).Infof(format, args...) }
func HistoryDebug(format string, args ...interface{}) { Get(CategoryHistory).Debugf(format, args...) }
func HistoryError(format string, args ...interface{}) { Get(CategoryHistory).Errorf(format, args...) }

func TUI(format string, args ...interface{})      { Get(CategoryTUI).Infof(format, args...) }
func TUIDebug(format string, args ...interface{}) { Get(CategoryTUI).Debugf(format, args...) }

func ConfigInfo(format string, args ...interface{})  { Get(CategoryConfig).Infof(format, args...) }
func ConfigDebug(format string, args ...interface{}) { Get(CategoryConfig).Debugf(format, args...) }

// Timer tracks operation duration for performance logging
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugf("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warnf("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debugf("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
