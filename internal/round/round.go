package round

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Round is one timed conversion attempt. Create it with Engine.NewRound.
type Round struct {
	id        uuid.UUID
	cfg       Config
	challenge Challenge
	clock     *Clock
	logger    *zap.Logger

	status   Status
	input    string
	elapsed  time.Duration
	finished bool
}

// ID identifies the round in logs and history.
func (r *Round) ID() uuid.UUID { return r.id }

// Config returns the configuration the round was created with.
func (r *Round) Config() Config { return r.cfg }

// Challenge returns the value being converted.
func (r *Round) Challenge() Challenge { return r.challenge }

// Status returns the current lifecycle state.
func (r *Round) Status() Status { return r.status }

// State returns a snapshot. Elapsed is refreshed for running rounds.
func (r *Round) State() State {
	if r.status == Running {
		r.elapsed, _ = r.clock.Elapsed()
	}
	return State{
		ID:        r.id,
		Challenge: r.challenge,
		Elapsed:   r.elapsed,
		Input:     r.input,
		Status:    r.status,
	}
}

// Remaining is the time left before the round expires. Pending rounds report
// the full limit; finished rounds report what was left when they ended.
func (r *Round) Remaining() time.Duration {
	if !r.clock.Started() {
		return r.cfg.TimeLimit
	}
	return r.clock.Remaining(r.cfg.TimeLimit)
}

// Begin starts the clock. Only a pending round can begin.
func (r *Round) Begin() error {
	if r.status != Pending {
		return illegal("begin", r.status)
	}
	r.clock.Start()
	r.transition(Running)
	return nil
}

// Submit validates raw against the target. An exact match succeeds even if the
// deadline passed since the last poll; otherwise an expired clock times the
// round out. Any other input leaves the round running.
func (r *Round) Submit(raw string) (Validation, error) {
	if r.status != Running {
		return Validation{}, illegal("submit to", r.status)
	}
	r.input = raw
	v := Validate(raw, r.challenge.TargetRepresentation(), r.challenge.Target)

	switch {
	case v.Complete:
		r.transition(Succeeded)
	case r.clock.Expired(r.cfg.TimeLimit):
		r.transition(TimedOut)
	default:
		r.elapsed, _ = r.clock.Elapsed()
	}
	return v, nil
}

// Tick expires a running round whose time is up and returns the new status.
func (r *Round) Tick() (Status, error) {
	if r.status != Running {
		return r.status, illegal("tick", r.status)
	}
	if r.clock.Expired(r.cfg.TimeLimit) {
		r.transition(TimedOut)
	} else {
		r.elapsed, _ = r.clock.Elapsed()
	}
	return r.status, nil
}

// Abort cancels a pending or running round.
func (r *Round) Abort() error {
	if r.status.Terminal() {
		return illegal("abort", r.status)
	}
	r.transition(Aborted)
	return nil
}

// Finish collects the result of a terminal round. It succeeds once.
func (r *Round) Finish() (Result, error) {
	if !r.status.Terminal() {
		return Result{}, illegal("finish", r.status)
	}
	if r.finished {
		return Result{}, illegal("re-finish", r.status)
	}
	r.finished = true

	res := Result{
		RoundID:   r.id,
		Correct:   r.status == Succeeded,
		Status:    r.status,
		Elapsed:   r.elapsed,
		Challenge: r.challenge,
		Config:    r.cfg,
	}
	if res.Correct && r.elapsed > 0 {
		res.BitsPerSecond = float64(r.challenge.BitWidth) / r.elapsed.Seconds()
	}
	r.logger.Debug("round finished",
		zap.String("round_id", r.id.String()),
		zap.Stringer("status", r.status),
		zap.Duration("elapsed", r.elapsed),
		zap.Float64("bits_per_second", res.BitsPerSecond))
	return res, nil
}

// Finished reports whether Finish already collected the result.
func (r *Round) Finished() bool { return r.finished }

func (r *Round) transition(to Status) {
	from := r.status
	r.status = to
	if to.Terminal() {
		r.clock.Stop()
	}
	if r.clock.Started() {
		r.elapsed, _ = r.clock.Elapsed()
	}
	r.logger.Debug("round transition",
		zap.String("round_id", r.id.String()),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Duration("elapsed", r.elapsed))
}
