package play

import (
	"fmt"
	"strings"

	"bitsense/internal/round"
	"bitsense/internal/session"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current round.
func (m Model) View() string {
	if m.quitting {
		return m.summaryView() + "\n"
	}
	if m.cur == nil {
		return ""
	}

	ch := m.cur.Challenge()
	var sb strings.Builder

	header := fmt.Sprintf("bitsense  %s → %s  %d bits", ch.Source.Label(), ch.Target.Label(), ch.BitWidth)
	sb.WriteString(m.styles.Header.Render(header))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render(ch.Source.Label()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Challenge.Render(ch.Display()))
	sb.WriteString("\n\n")

	m.input.TextStyle = m.inputStyle()
	m.input.PromptStyle = m.styles.Prompt
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.countdownView())
	sb.WriteString("\n\n")

	if fb := m.feedbackView(); fb != "" {
		sb.WriteString(fb)
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render(statsLine(m.sess.Stats())))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("! " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return m.styles.Content.Render(sb.String())
}

// inputStyle colors the answer: red for bad digits, muted while it is still
// a prefix of the answer, yellow once it has diverged.
func (m Model) inputStyle() lipgloss.Style {
	switch {
	case m.validation.Invalid:
		return m.styles.InputInvalid
	case m.validation.Prefix:
		return m.styles.InputPrefix
	default:
		return m.styles.InputWrong
	}
}

func (m Model) countdownView() string {
	limit := m.cur.Config().TimeLimit
	remaining := m.cur.Remaining()
	frac := 0.0
	if limit > 0 {
		frac = float64(remaining) / float64(limit)
	}
	secs := fmt.Sprintf(" %4.1fs", remaining.Seconds())
	if m.cur.Status() == round.Running && frac < 0.25 {
		secs = m.styles.Warning.Render(secs)
	} else {
		secs = m.styles.Muted.Render(secs)
	}
	return m.progress.ViewAs(frac) + secs
}

func (m Model) feedbackView() string {
	switch m.feedbackKind {
	case feedbackCorrect:
		return m.styles.Success.Render(m.feedback)
	case feedbackMiss, feedbackError:
		return m.styles.Error.Render(m.feedback)
	case feedbackWrong:
		return m.styles.Warning.Render(m.feedback)
	}
	return ""
}

func (m Model) summaryView() string {
	st := m.sess.Stats()
	var sb strings.Builder
	if m.feedback != "" {
		sb.WriteString(m.feedbackView())
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Title.Render("Session over"))
	sb.WriteString("\n")
	sb.WriteString(statsLine(st))
	return sb.String()
}

// statsLine renders "correct/total (acc%)  streak N  best X bits/s".
func statsLine(st session.Stats) string {
	return fmt.Sprintf("%d/%d (%.0f%%)  streak %d  best %.2f bits/s",
		st.Correct, st.Total, st.Accuracy()*100, st.Streak, st.BestBitsPerSecond)
}
