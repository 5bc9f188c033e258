package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MichonGoddijn231849/emolens/internal/history"
)

// historyView lists the archive of completed analysis runs.
type historyView struct {
	table   table.Model
	entries []history.Entry
	width   int
	height  int
}

func newHistoryView() historyView {
	columns := []table.Column{
		{Title: "When", Width: 19},
		{Title: "Source", Width: 38},
		{Title: "Plan", Width: 6},
		{Title: "Feedback", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorHighlight).BorderBottom(true)
	s.Selected = selectedRowStyle
	t.SetStyles(s)

	return historyView{table: t}
}

// SetEntries replaces the table contents. Entries arrive most-recent-first
// from the store.
func (v *historyView) SetEntries(entries []history.Entry) {
	v.entries = entries

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		feedback := "—"
		if e.FeedbackSubmitted {
			feedback = submittedBadgeStyle.Render("✓ sent")
		}
		rows[i] = table.Row{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(e.SourceRef, 38),
			e.Plan,
			feedback,
		}
	}
	v.table.SetRows(rows)
}

// Selected returns the highlighted entry, or false when the archive is
// empty.
func (v *historyView) Selected() (history.Entry, bool) {
	idx := v.table.Cursor()
	if idx < 0 || idx >= len(v.entries) {
		return history.Entry{}, false
	}
	return v.entries[idx], true
}

func (v *historyView) SetSize(w, h int) {
	v.width, v.height = w, h
	v.table.SetWidth(w - 2)
	v.table.SetHeight(h - 2)
}

func (v historyView) Update(msg tea.Msg) (historyView, tea.Cmd) {
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v historyView) View() string {
	if len(v.entries) == 0 {
		return noticeStyle.Render("No completed runs yet. Use /analyze <url> to start one.")
	}

	count := axisStyle.Render(fmt.Sprintf("  %d of %d runs archived (cap %d)",
		len(v.entries), len(v.entries), history.MaxEntries))
	return lipgloss.JoinVertical(lipgloss.Left, v.table.View(), count)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
