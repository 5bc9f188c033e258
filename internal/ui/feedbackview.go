package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MichonGoddijn231849/emolens/internal/feedback"
	"github.com/MichonGoddijn231849/emolens/internal/timecode"
)

// feedbackView renders the modal correction dialog for one session. All
// state transitions go through the session machine; this model only holds
// presentation state (cursor position, spinner, last error line).
type feedbackView struct {
	session *feedback.Session
	nonce   int

	spinner  spinner.Model
	cursor   int
	errText  string
	exported string

	width  int
	height int
}

func newFeedbackView(session *feedback.Session, nonce int) feedbackView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)
	return feedbackView{session: session, nonce: nonce, spinner: sp}
}

func (v feedbackView) Init() tea.Cmd {
	return v.spinner.Tick
}

func (v *feedbackView) Session() *feedback.Session { return v.session }
func (v *feedbackView) Nonce() int                 { return v.nonce }

// SetError surfaces a failed load or submission inline. The session has
// already been rolled back by the caller.
func (v *feedbackView) SetError(text string) {
	v.errText = text
}

// SetExported records the path of a written corrections file.
func (v *feedbackView) SetExported(path string) {
	v.exported = path
}

func (v *feedbackView) SetSize(w, h int) {
	v.width, v.height = w, h
}

func (v feedbackView) Update(msg tea.Msg) (feedbackView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v feedbackView) handleKey(key tea.KeyMsg) (feedbackView, tea.Cmd) {
	s := v.session

	switch s.State() {
	case feedback.StatePrompting:
		switch key.String() {
		case "y", "Y":
			v.applyTransition(s.Accept())
		case "n", "N":
			v.applyTransition(s.Reject())
		}

	case feedback.StateEditing:
		switch key.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(s.Working())-1 {
				v.cursor++
			}
		case "left", "h":
			v.cycleLabel(-1)
		case "right", "l", "tab":
			v.cycleLabel(1)
		case "u":
			// Put the focused row back to its original label.
			if v.cursor < len(s.Original()) {
				v.applyTransition(s.SetLabel(v.cursor, s.Original()[v.cursor].Label))
			}
		case "r", "enter":
			v.applyTransition(s.Review())
		}

	case feedback.StateConfirming:
		switch key.String() {
		case "enter", "y":
			v.applyTransition(s.Confirm())
		case "e", "n":
			v.applyTransition(s.Revise())
		}
	}

	return v, nil
}

// applyTransition records a refused session transition in the dialog's
// error line, or clears it when the transition went through.
func (v *feedbackView) applyTransition(err error) {
	if err != nil {
		v.errText = err.Error()
		return
	}
	v.errText = ""
}

// cycleLabel steps the focused row through the session vocabulary.
func (v *feedbackView) cycleLabel(dir int) {
	s := v.session
	working := s.Working()
	if v.cursor < 0 || v.cursor >= len(working) {
		return
	}

	vocab := s.Vocabulary
	current := 0
	for i, label := range vocab {
		if label == working[v.cursor].Label {
			current = i
			break
		}
	}
	next := (current + dir + len(vocab)) % len(vocab)
	v.applyTransition(s.SetLabel(v.cursor, vocab[next]))
}

func (v feedbackView) View() string {
	var body string
	switch v.session.State() {
	case feedback.StateLoading:
		body = fmt.Sprintf("%s Fetching segments for %s…", v.spinner.View(),
			truncate(v.session.Entry.SourceRef, 40))

	case feedback.StatePrompting:
		body = v.viewPrompt()

	case feedback.StateEditing:
		body = v.viewEditor()

	case feedback.StateConfirming:
		body = v.viewConfirm()

	case feedback.StateSubmitting:
		body = fmt.Sprintf("%s Submitting feedback…", v.spinner.View())

	case feedback.StateSubmitted:
		body = v.viewSubmitted()

	default:
		body = noticeStyle.Render("Session closed.")
	}

	if v.errText != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, errorStyle.Render("✗ "+v.errText))
	}

	return dialogStyle.Render(body)
}

func (v feedbackView) viewPrompt() string {
	n := len(v.session.Original())
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Review labeling"),
		fmt.Sprintf("  %d segments loaded from %s.", n, truncate(v.session.Entry.SourceRef, 40)),
		"",
		"  Is the emotion labeling correct?",
		"",
		axisStyle.Render("  [y] yes, submit confirmation   [n] no, edit labels   [esc] cancel"),
	)
}

func (v feedbackView) viewEditor() string {
	s := v.session
	original := s.Original()
	working := s.Working()

	maxRows := v.height - 10
	if maxRows < 5 {
		maxRows = 5
	}
	first := 0
	if v.cursor >= maxRows {
		first = v.cursor - maxRows + 1
	}

	var rows []string
	for i := first; i < len(working) && i < first+maxRows; i++ {
		ev := working[i]
		label := ev.Label
		if label != original[i].Label {
			label = changedLabelStyle.Render(label)
		}
		row := fmt.Sprintf("%3d  %s  %-14s %s",
			i+1, timecode.Format(ev.StartMs), label, truncate(ev.Text, 44))
		if i == v.cursor {
			row = selectedRowStyle.Render("▸ " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}

	changed := s.ChangedCount()
	footer := fmt.Sprintf("  %d of %d labels changed", changed, len(working))
	if changed == 0 {
		footer += "   (change at least one to continue)"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Edit labels"),
		strings.Join(rows, "\n"),
		"",
		changedLabelStyle.Render(footer),
		axisStyle.Render("  ←/→ relabel   ↑/↓ move   u undo row   enter review   esc cancel"),
	)
}

func (v feedbackView) viewConfirm() string {
	changes := v.session.Changes()
	original := v.session.Original()

	var rows []string
	for _, c := range changes {
		rows = append(rows, fmt.Sprintf("  %s  %s → %s   %s",
			timecode.Format(original[c.Index].StartMs),
			c.From, changedLabelStyle.Render(c.To),
			truncate(original[c.Index].Text, 36)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Confirm %d corrections", len(changes))),
		strings.Join(rows, "\n"),
		"",
		axisStyle.Render("  [enter] submit   [e] keep editing   [esc] cancel"),
	)
}

func (v feedbackView) viewSubmitted() string {
	lines := []string{
		titleStyle.Render("Feedback submitted"),
		submittedBadgeStyle.Render("  ✓ recorded for " + truncate(v.session.Entry.SourceRef, 40)),
	}
	if v.exported != "" {
		lines = append(lines, "  exported to "+v.exported)
	}
	hint := "  [esc] close"
	if v.session.HasCorrections() && v.exported == "" {
		hint = "  [x] export corrected artifact   [esc] close"
	}
	lines = append(lines, "", axisStyle.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
