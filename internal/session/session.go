// Package session chains timed rounds into a practice session and keeps the
// running statistics shown by the terminal UI.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitsense/internal/logging"
	"bitsense/internal/round"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	// ErrNoRound is returned when an operation needs a current round.
	ErrNoRound = errors.New("no round in progress")
	// ErrRoundInProgress is returned by Start while the current round is unfinished.
	ErrRoundInProgress = errors.New("current round not finished")
	// ErrDone is returned by Start once the round cap is reached.
	ErrDone = errors.New("session complete")
)

// Recorder persists finished rounds. history.Store implements it.
type Recorder interface {
	Append(ctx context.Context, sessionID uuid.UUID, res round.Result) error
}

// Options configures a session.
type Options struct {
	Round round.Config
	// Rounds caps the session; zero plays until the player quits.
	Rounds   int
	Recorder Recorder
	// Clock times the session itself. Nil means the engine's clock.
	Clock clockwork.Clock
}

// Session owns at most one active round at a time.
type Session struct {
	id      uuid.UUID
	engine  *round.Engine
	opts    Options
	current *round.Round
	stats   Stats
	last    *round.Result
	clock   clockwork.Clock
	started time.Time
	logger  *zap.Logger
}

// New validates opts and returns an empty session.
func New(engine *round.Engine, opts Options) (*Session, error) {
	if err := round.ValidateConfig(opts.Round); err != nil {
		return nil, err
	}
	if opts.Rounds < 0 {
		return nil, fmt.Errorf("rounds must not be negative, got %d", opts.Rounds)
	}
	clock := opts.Clock
	if clock == nil {
		clock = engine.Clock()
	}
	s := &Session{
		id:      uuid.New(),
		engine:  engine,
		opts:    opts,
		clock:   clock,
		started: clock.Now(),
		logger:  logging.Logger(logging.CategorySession),
	}
	s.logger.Info("session created",
		zap.String("session_id", s.id.String()),
		zap.Int("bit_width", opts.Round.BitWidth),
		zap.Stringer("direction", opts.Round.Direction),
		zap.Duration("time_limit", opts.Round.TimeLimit),
		zap.Int("rounds", opts.Rounds))
	return s, nil
}

// ID groups this session's rounds in history.
func (s *Session) ID() uuid.UUID { return s.id }

// Options returns the options the session was created with.
func (s *Session) Options() Options { return s.opts }

// Current returns the active round, or nil.
func (s *Session) Current() *round.Round { return s.current }

// Stats returns a snapshot of the running statistics.
func (s *Session) Stats() Stats { return s.stats }

// Last returns the most recently completed result.
func (s *Session) Last() (round.Result, bool) {
	if s.last == nil {
		return round.Result{}, false
	}
	return *s.last, true
}

// Duration returns how long the session has been open.
func (s *Session) Duration() time.Duration {
	return s.clock.Since(s.started)
}

// Done reports whether the round cap has been reached.
func (s *Session) Done() bool {
	return s.opts.Rounds > 0 && s.stats.Total >= s.opts.Rounds
}

// Start creates and begins the next round.
func (s *Session) Start() (*round.Round, error) {
	if s.current != nil && !s.current.Finished() {
		return nil, ErrRoundInProgress
	}
	if s.Done() {
		return nil, ErrDone
	}
	r, err := s.engine.NewRound(s.opts.Round)
	if err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}
	if err := r.Begin(); err != nil {
		return nil, fmt.Errorf("failed to begin round: %w", err)
	}
	s.current = r
	logging.SessionDebug("round %s started (%d so far)", r.ID(), s.stats.Total)
	return r, nil
}

// Complete collects the current terminal round, updates the stats and hands
// the result to the recorder. A recorder failure is returned alongside the
// result; the stats are updated either way.
func (s *Session) Complete(ctx context.Context) (round.Result, error) {
	if s.current == nil {
		return round.Result{}, ErrNoRound
	}
	res, err := s.current.Finish()
	if err != nil {
		return round.Result{}, err
	}
	s.stats.add(res)
	s.last = &res

	s.logger.Info("round completed",
		zap.String("session_id", s.id.String()),
		zap.String("round_id", res.RoundID.String()),
		zap.Stringer("status", res.Status),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("bits_per_second", res.BitsPerSecond),
		zap.Int("streak", s.stats.Streak))

	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.Append(ctx, s.id, res); err != nil {
			logging.SessionWarn("failed to record round %s: %v", res.RoundID, err)
			return res, fmt.Errorf("failed to record round: %w", err)
		}
	}
	return res, nil
}

// Skip aborts the current round and completes it as a miss.
func (s *Session) Skip(ctx context.Context) (round.Result, error) {
	if s.current == nil {
		return round.Result{}, ErrNoRound
	}
	if err := s.current.Abort(); err != nil {
		return round.Result{}, err
	}
	return s.Complete(ctx)
}

// Close aborts an unfinished round without counting it.
func (s *Session) Close() {
	if s.current != nil && !s.current.Status().Terminal() {
		_ = s.current.Abort()
	}
	s.logger.Info("session closed",
		zap.String("session_id", s.id.String()),
		zap.Int("total", s.stats.Total),
		zap.Int("correct", s.stats.Correct),
		zap.Duration("duration", s.Duration()))
}
