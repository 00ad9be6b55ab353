package round

import (
	"fmt"

	"bitsense/internal/logging"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Engine creates rounds that share an entropy source and a time source.
type Engine struct {
	gen    *Generator
	clock  clockwork.Clock
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the real clock, typically with a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger replaces the round category logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an engine drawing challenges from src.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		gen:    NewGenerator(src),
		clock:  clockwork.NewRealClock(),
		logger: logging.Logger(logging.CategoryRound),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the time source rounds are timed against.
func (e *Engine) Clock() clockwork.Clock { return e.clock }

// ValidateConfig checks cfg without consuming entropy.
func ValidateConfig(cfg Config) error {
	if cfg.TimeLimit <= 0 {
		return &ConfigError{Field: "time_limit", Reason: fmt.Sprintf("must be positive, got %s", cfg.TimeLimit)}
	}
	if err := ValidateWidth(cfg.BitWidth); err != nil {
		return err
	}
	switch cfg.Direction {
	case BinToHex, HexToBin, Random:
		return nil
	}
	return &ConfigError{Field: "direction", Reason: fmt.Sprintf("unknown direction %d", int(cfg.Direction))}
}

// NewRound generates a challenge for cfg and returns a pending round.
func (e *Engine) NewRound(cfg Config) (*Round, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	ch, err := e.gen.Generate(cfg.BitWidth, cfg.Direction)
	if err != nil {
		return nil, err
	}
	r := &Round{
		id:        uuid.New(),
		cfg:       cfg,
		challenge: ch,
		clock:     NewClock(e.clock),
		logger:    e.logger,
		status:    Pending,
	}
	e.logger.Debug("round created",
		zap.String("round_id", r.id.String()),
		zap.Stringer("direction", cfg.Direction),
		zap.Int("bit_width", cfg.BitWidth),
		zap.Stringer("source", ch.Source),
		zap.Duration("time_limit", cfg.TimeLimit))
	return r, nil
}
