// Package play is the interactive round loop: a bubbletea model that polls
// the active round on a frame tick and feeds keystrokes to it.
package play

import (
	"context"
	"fmt"
	"time"

	"bitsense/cmd/bitsense/ui"
	"bitsense/internal/logging"
	"bitsense/internal/round"
	"bitsense/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Input modes.
const (
	// ModeLive checks the answer on every keystroke.
	ModeLive = "live"
	// ModeSubmit checks the answer on enter.
	ModeSubmit = "submit"
)

const defaultFrame = time.Second / 30

// Options configures a Model.
type Options struct {
	Session       *session.Session
	Mode          string
	FrameInterval time.Duration
	Styles        ui.Styles
}

type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackCorrect
	feedbackMiss
	feedbackWrong
	feedbackError
)

// tickMsg drives Round.Tick at the frame rate.
type tickMsg time.Time

// Model is the bubbletea model for a practice session.
type Model struct {
	ctx      context.Context
	sess     *session.Session
	cur      *round.Round
	mode     string
	frame    time.Duration
	styles   ui.Styles
	keys     keyMap
	input    textinput.Model
	progress progress.Model
	help     help.Model

	validation   round.Validation
	feedback     string
	feedbackKind feedbackKind
	err          error

	width    int
	height   int
	quitting bool
}

// New starts the session's first round and returns the model.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Session == nil {
		return Model{}, fmt.Errorf("session required")
	}
	switch opts.Mode {
	case "":
		opts.Mode = ModeLive
	case ModeLive, ModeSubmit:
	default:
		return Model{}, fmt.Errorf("unknown input mode %q", opts.Mode)
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrame
	}

	ti := textinput.New()
	ti.Placeholder = "answer"
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		ctx:      ctx,
		sess:     opts.Session,
		mode:     opts.Mode,
		frame:    opts.FrameInterval,
		styles:   opts.Styles,
		keys:     newKeyMap(opts.Mode),
		input:    ti,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		width:    80,
	}
	if err := m.startRound(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init starts the cursor blink and the frame tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Stats returns the session statistics.
func (m Model) Stats() session.Stats { return m.sess.Stats() }

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

// Err returns the last non-fatal error, such as a failed history write.
func (m Model) Err() error { return m.err }

// Run drives a session in a full-screen program until the player quits
// or the round cap is reached.
func Run(ctx context.Context, opts Options) (session.Stats, error) {
	m, err := New(ctx, opts)
	if err != nil {
		return session.Stats{}, err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		opts.Session.Close()
		return opts.Session.Stats(), fmt.Errorf("terminal UI failed: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		logging.TUI("session ended with error: %v", fm.err)
	}
	return opts.Session.Stats(), nil
}

func (m *Model) startRound() error {
	r, err := m.sess.Start()
	if err != nil {
		return err
	}
	m.cur = r
	m.input.Reset()
	m.validation = round.Validation{Prefix: true}
	m.input.Prompt = r.Challenge().Target.Label() + "> "
	m.input.CharLimit = 2*r.Challenge().BitWidth + 8
	logging.TUIDebug("round %s: %s -> %s", r.ID(), r.Challenge().Display(), r.Challenge().Target)
	return nil
}

// completeRound collects the finished round and moves on.
func (m Model) completeRound() (Model, tea.Cmd) {
	res, err := m.sess.Complete(m.ctx)
	if err != nil {
		m.err = err
		if res.RoundID == uuid.Nil {
			m.feedback, m.feedbackKind = err.Error(), feedbackError
			return m, nil
		}
	}

	answer := res.Challenge.TargetRepresentation()
	switch res.Status {
	case round.Succeeded:
		m.feedback = fmt.Sprintf("Correct! %.2fs, %.2f bits/s", res.ElapsedSeconds(), res.BitsPerSecond)
		m.feedbackKind = feedbackCorrect
	case round.TimedOut:
		m.feedback = "Time's up. Correct: " + answer
		m.feedbackKind = feedbackMiss
	default:
		m.feedback = "Skipped. Correct: " + answer
		m.feedbackKind = feedbackMiss
	}

	if m.sess.Done() {
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit
	}
	if err := m.startRound(); err != nil {
		m.err = err
		m.feedback, m.feedbackKind = err.Error(), feedbackError
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.sess.Close()
	return m, tea.Quit
}
