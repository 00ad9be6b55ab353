package play

import (
	"context"
	"testing"
	"time"

	"bitsense/cmd/bitsense/ui"
	"bitsense/internal/round"
	"bitsense/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource uint64

func (c constSource) Uint64() uint64 { return uint64(c) }

// NewTestModel builds a model whose rounds always ask for 0xAB as binary.
func NewTestModel(t *testing.T, mode string, rounds int) (Model, *clockwork.FakeClock) {
	t.Helper()
	fake := clockwork.NewFakeClock()
	eng := round.NewEngine(constSource(0xAB), round.WithClock(fake))
	sess, err := session.New(eng, session.Options{
		Round:  round.Config{TimeLimit: 5 * time.Second, BitWidth: 8, Direction: round.BinToHex},
		Rounds: rounds,
	})
	require.NoError(t, err)

	m, err := New(context.Background(), Options{
		Session: sess,
		Mode:    mode,
		Styles:  ui.NewStyles(ui.LightTheme()),
	})
	require.NoError(t, err)
	return m, fake
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := NewTestModel(t, ModeLive, 0)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 60, m.progress.Width)

	// Should not panic on degenerate sizes
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.Equal(t, 10, m.progress.Width)
	_ = m.View()
}

func TestLiveMode_CorrectAnswerStartsNextRound(t *testing.T) {
	m, fake := NewTestModel(t, ModeLive, 0)
	first := m.cur.ID()

	fake.Advance(2 * time.Second)
	m = typeText(t, m, "a")
	assert.Equal(t, first, m.cur.ID())
	assert.True(t, m.validation.Prefix)

	m = typeText(t, m, "b")
	assert.NotEqual(t, first, m.cur.ID(), "a new round should start")
	assert.Equal(t, round.Running, m.cur.Status())
	assert.Empty(t, m.input.Value())
	assert.Equal(t, feedbackCorrect, m.feedbackKind)
	assert.Contains(t, m.feedback, "Correct")
	assert.Contains(t, m.feedback, "4.00 bits/s")

	st := m.Stats()
	assert.Equal(t, 1, st.Correct)
	assert.Equal(t, 1, st.Streak)
}

func TestLiveMode_InputColoring(t *testing.T) {
	m, _ := NewTestModel(t, ModeLive, 0)

	m = typeText(t, m, "c")
	assert.False(t, m.validation.Invalid)
	assert.False(t, m.validation.Prefix)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "z")
	assert.True(t, m.validation.Invalid)
	assert.Equal(t, round.Running, m.cur.Status())
}

func TestTick_TimeoutCompletesRound(t *testing.T) {
	m, fake := NewTestModel(t, ModeLive, 0)
	first := m.cur.ID()

	m, cmd := send(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick should reschedule itself")
	assert.Equal(t, first, m.cur.ID())

	fake.Advance(6 * time.Second)
	m, _ = send(t, m, tickMsg(time.Now()))

	assert.NotEqual(t, first, m.cur.ID())
	assert.Equal(t, "Time's up. Correct: ab", m.feedback)
	assert.Equal(t, 1, m.Stats().TimedOut)
	assert.Equal(t, 0, m.Stats().Streak)
}

func TestSubmitMode_WrongThenRight(t *testing.T) {
	m, _ := NewTestModel(t, ModeSubmit, 0)
	first := m.cur.ID()

	// A complete answer does nothing until enter.
	m = typeText(t, m, "ff")
	assert.Equal(t, round.Running, m.cur.Status())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Wrong", m.feedback)
	assert.Equal(t, first, m.cur.ID())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "AB")
	assert.Equal(t, round.Running, m.cur.Status())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotEqual(t, first, m.cur.ID())
	assert.Equal(t, 1, m.Stats().Correct)
}

func TestSubmitMode_EditClearsWrong(t *testing.T) {
	m, _ := NewTestModel(t, ModeSubmit, 0)

	m = typeText(t, m, "ff")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Wrong", m.feedback)

	// Cursor movement leaves the value alone.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Wrong", m.feedback)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, m.feedback)
	assert.Equal(t, feedbackNone, m.feedbackKind)
	assert.NotContains(t, m.View(), "Wrong")
}

func TestSkip(t *testing.T) {
	m, _ := NewTestModel(t, ModeLive, 0)
	first := m.cur.ID()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.NotEqual(t, first, m.cur.ID())
	assert.Equal(t, "Skipped. Correct: ab", m.feedback)
	assert.Equal(t, 1, m.Stats().Skipped)
}

func TestQuit(t *testing.T) {
	t.Run("esc", func(t *testing.T) {
		m, _ := NewTestModel(t, ModeLive, 0)
		r := m.cur
		m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, isQuit(cmd))
		assert.True(t, m.Quitting())
		assert.Equal(t, round.Aborted, r.Status())
		assert.Equal(t, 0, m.Stats().Total, "quitting mid-round is not counted")
	})

	t.Run("q on empty input", func(t *testing.T) {
		m, _ := NewTestModel(t, ModeLive, 0)
		_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		assert.True(t, isQuit(cmd))
	})

	t.Run("q after input is a keystroke", func(t *testing.T) {
		m, _ := NewTestModel(t, ModeLive, 0)
		m = typeText(t, m, "a")
		m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		assert.False(t, m.Quitting())
		assert.False(t, isQuit(cmd))
		assert.True(t, m.validation.Invalid)
	})
}

func TestRoundCapEndsSession(t *testing.T) {
	m, _ := NewTestModel(t, ModeLive, 1)

	m = typeText(t, m, "ab")
	assert.True(t, m.Quitting())
	assert.Equal(t, 1, m.Stats().Total)
	assert.Contains(t, m.View(), "Session over")

	// Ticks after quitting are dropped.
	_, cmd := send(t, m, tickMsg(time.Now()))
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	m, _ := NewTestModel(t, ModeLive, 0)
	view := m.View()

	assert.Contains(t, view, "1010 1011")
	assert.Contains(t, view, "BIN → HEX")
	assert.Contains(t, view, "HEX> ")
	assert.Contains(t, view, "0/0 (0%)")
	assert.Contains(t, view, "skip")
}

func TestNew_RejectsBadOptions(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)

	eng := round.NewEngine(constSource(1))
	sess, err := session.New(eng, session.Options{
		Round: round.Config{TimeLimit: time.Second, BitWidth: 4, Direction: round.BinToHex},
	})
	require.NoError(t, err)
	_, err = New(context.Background(), Options{Session: sess, Mode: "telepathy"})
	assert.Error(t, err)
}
