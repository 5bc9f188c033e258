package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("196") // Red
)

// Emotion family colors for the stripe and distribution charts, indexed
// by segment.FamilyRank.
var familyColors = []lipgloss.Color{
	lipgloss.Color("245"), // neutral: gray
	lipgloss.Color("220"), // happy: yellow
	lipgloss.Color("33"),  // sad: blue
	lipgloss.Color("196"), // mad: red
	lipgloss.Color("129"), // scared: purple
	lipgloss.Color("208"), // surprised: orange
	lipgloss.Color("70"),  // disgusted: green
	lipgloss.Color("240"), // unknown
}

// headerStyle renders the top bar.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// statusBarStyle renders the bottom status bar.
var statusBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// errorStyle for surfaced errors.
var errorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// noticeStyle for informational banners ("no data", "already submitted").
var noticeStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(1, 2)

// titleStyle for section titles inside views.
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginTop(1).
	Padding(0, 1)

// dialogStyle frames the feedback dialog.
var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// selectedRowStyle highlights the focused row in editable lists.
var selectedRowStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// changedLabelStyle marks labels that differ from the original.
var changedLabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// submittedBadgeStyle marks archive entries with recorded feedback.
var submittedBadgeStyle = lipgloss.NewStyle().
	Foreground(colorSuccess)

// axisStyle for chart axis labels.
var axisStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// cursorStyle for the playback cursor marker.
var cursorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// labelColor returns the lipgloss color for an emotion label via its
// family rank.
func labelColor(rank int) lipgloss.Color {
	if rank < 0 || rank >= len(familyColors) {
		return familyColors[len(familyColors)-1]
	}
	return familyColors[rank]
}
