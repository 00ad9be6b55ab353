package play

import (
	"bitsense/internal/round"

	tea "github.com/charmbracelet/bubbletea"
)

// Update routes frame ticks, window sizes and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = clamp(msg.Width-8, 10, 60)
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if m.cur != nil && m.cur.Status() == round.Running {
			if status, err := m.cur.Tick(); err == nil && status == round.TimedOut {
				next, cmd := m.completeRound()
				return next, tea.Batch(cmd, next.tick())
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		next, cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return next, cmd
		}
		return next.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateInput forwards a key to the text field and, in live mode, to the round.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.cur == nil || m.cur.Status() != round.Running {
		return m, cmd
	}
	// "Wrong" describes the submitted answer, not the one being edited.
	if m.feedbackKind == feedbackWrong && m.input.Value() != before {
		m.feedback, m.feedbackKind = "", feedbackNone
	}

	if m.mode != ModeLive {
		ch := m.cur.Challenge()
		m.validation = round.Validate(m.input.Value(), ch.TargetRepresentation(), ch.Target)
		return m, cmd
	}

	v, err := m.cur.Submit(m.input.Value())
	if err != nil {
		return m, cmd
	}
	m.validation = v
	if m.cur.Status().Terminal() {
		next, done := m.completeRound()
		return next, tea.Batch(cmd, done)
	}
	return m, cmd
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
