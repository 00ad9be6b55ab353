package play

import (
	"bitsense/internal/round"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes control keys. handled=false means the key belongs
// to the text field.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.quitting {
		return m, nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		next, cmd := m.quit()
		return next, cmd, true

	case msg.Type == tea.KeyRunes && string(msg.Runes) == "q" && m.input.Value() == "":
		next, cmd := m.quit()
		return next, cmd, true

	case key.Matches(msg, m.keys.Skip):
		if m.cur == nil || m.cur.Status() != round.Running {
			return m, nil, true
		}
		if err := m.cur.Abort(); err != nil {
			return m, nil, true
		}
		next, cmd := m.completeRound()
		return next, cmd, true

	case key.Matches(msg, m.keys.Submit):
		next, cmd := m.submit()
		return next, cmd, true
	}
	return m, nil, false
}

// submit checks the current input against the round.
func (m Model) submit() (Model, tea.Cmd) {
	if m.cur == nil || m.cur.Status() != round.Running {
		return m, nil
	}
	v, err := m.cur.Submit(m.input.Value())
	if err != nil {
		return m, nil
	}
	m.validation = v
	if m.cur.Status().Terminal() {
		return m.completeRound()
	}
	if m.input.Value() != "" {
		m.feedback, m.feedbackKind = "Wrong", feedbackWrong
	}
	return m, nil
}
