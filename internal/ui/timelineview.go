package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/playback"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
	"github.com/MichonGoddijn231849/emolens/internal/timecode"
	"github.com/MichonGoddijn231849/emolens/internal/timeline"
)

// sparkline glyphs for the intensity curve, low to high.
var sparks = []rune("▁▂▃▄▅▆▇█")

// timelineView renders the derived series for one artifact, with a
// playback cursor kept in sync by the position poller.
type timelineView struct {
	entry  history.Entry
	events []segment.Event
	series timeline.Series

	transport *playback.Transport
	poller    *playback.Poller

	selected int // focused counted bucket, drives seek-on-enter
	width    int
	height   int
}

func newTimelineView(transport *playback.Transport, poller *playback.Poller) timelineView {
	return timelineView{transport: transport, poller: poller}
}

// SetArtifact installs a freshly loaded artifact and recomputes every
// derived series. The transport is resized to the data and rewound.
func (v *timelineView) SetArtifact(entry history.Entry, events []segment.Event, vocabulary []string) {
	v.entry = entry
	v.events = events
	v.series = timeline.Build(events, vocabulary)
	v.selected = 0

	v.transport.Pause()
	v.transport.SetDuration(timelineEndSec(v.series))
	v.poller.Seek(0)
}

// timelineEndSec finds the display duration of the loaded series.
func timelineEndSec(s timeline.Series) float64 {
	var end float64
	if n := len(s.Segments); n > 0 {
		end = s.Segments[n-1].EndSec
	}
	if n := len(s.Continuous); n > 0 && s.Continuous[n-1].TimeSec > end {
		end = s.Continuous[n-1].TimeSec + timeline.DefaultSegmentPadSeconds
	}
	if n := len(s.Counted); n > 0 {
		last := float64(s.Counted[n-1].TimeMs)/1000 + timeline.DefaultSegmentPadSeconds
		if last > end {
			end = last
		}
	}
	return end
}

func (v *timelineView) SetSize(w, h int) {
	v.width, v.height = w, h
}

func (v timelineView) Update(msg tea.Msg) (timelineView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || v.series.Empty() {
		return v, nil
	}

	switch key.String() {
	case " ", "space":
		v.transport.Toggle()

	case "left", "h":
		if v.selected > 0 {
			v.selected--
		}

	case "right", "l":
		if v.selected < len(v.series.Counted)-1 {
			v.selected++
		}

	case "enter":
		// Clicking a bucket seeks playback to its time.
		if v.selected >= 0 && v.selected < len(v.series.Counted) {
			v.poller.Seek(float64(v.series.Counted[v.selected].TimeMs) / 1000)
		}

	case "0":
		v.poller.Seek(0)
	}

	return v, nil
}

func (v timelineView) View() string {
	if v.series.Empty() {
		return noticeStyle.Render("No emotion data in this artifact — nothing to chart.")
	}

	chartWidth := v.width - 6
	if chartWidth < 20 {
		chartWidth = 20
	}

	cursor := v.poller.Position()
	duration := v.transport.Duration()

	var sections []string
	sections = append(sections, v.renderTransportBar(cursor, duration))

	if len(v.series.Continuous) > 0 {
		sections = append(sections, titleStyle.Render("Intensity"))
		sections = append(sections, v.renderContinuous(chartWidth, cursor, duration))
	} else {
		sections = append(sections, titleStyle.Render("Timeline"))
		sections = append(sections, v.renderStripe(chartWidth, cursor, duration))
	}

	sections = append(sections, titleStyle.Render("Counts over time"))
	sections = append(sections, v.renderCounted())

	sections = append(sections, titleStyle.Render("Distribution"))
	sections = append(sections, v.renderDistribution(chartWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v timelineView) renderTransportBar(cursor, duration float64) string {
	state := "⏸ paused"
	if v.transport.Playing() {
		state = "▶ playing"
	}
	return statusBarStyle.Render(fmt.Sprintf("  %s   %.1fs / %.1fs   %s",
		state, cursor, duration, truncate(v.entry.SourceRef, 40)))
}

// renderStripe draws the gap-free segment band with the playback cursor
// marker above it.
func (v timelineView) renderStripe(width int, cursor, duration float64) string {
	segs := v.series.Segments
	if len(segs) == 0 || duration <= 0 {
		return noticeStyle.Render("no segments")
	}

	start := segs[0].StartSec
	span := segs[len(segs)-1].EndSec - start
	if span <= 0 {
		span = 1
	}

	var stripe strings.Builder
	for _, s := range segs {
		cells := int(float64(width) * (s.EndSec - s.StartSec) / span)
		if cells < 1 {
			cells = 1
		}
		block := strings.Repeat("█", cells)
		stripe.WriteString(lipgloss.NewStyle().
			Foreground(labelColor(segment.FamilyRank(s.Label))).
			Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"  "+cursorRuler(width, cursor, start, span),
		"  "+stripe.String(),
	)
}

// cursorRuler places the playback marker over a chart of the given span.
func cursorRuler(width int, cursor, startSec, spanSec float64) string {
	pos := int(float64(width) * (cursor - startSec) / spanSec)
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	return strings.Repeat(" ", pos) + cursorStyle.Render("▼")
}

// renderCounted lists one row per time bucket with its non-zero label
// counts. The focused bucket is highlighted; enter seeks to it.
func (v timelineView) renderCounted() string {
	var rows []string
	for i, p := range v.series.Counted {
		var parts []string
		for _, d := range v.series.Distribution {
			// Distribution order keeps the row layout stable.
			if c := p.Counts[d.Label]; c > 0 {
				bar := strings.Repeat("▰", c)
				parts = append(parts, lipgloss.NewStyle().
					Foreground(labelColor(segment.FamilyRank(d.Label))).
					Render(fmt.Sprintf("%s %s %d", d.Label, bar, c)))
			}
		}

		row := fmt.Sprintf("%5ss │ %s", timecode.FormatSeconds(p.TimeMs), strings.Join(parts, "   "))
		if i == v.selected {
			row = selectedRowStyle.Render(row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// renderDistribution draws horizontal population bars in family order.
func (v timelineView) renderDistribution(width int) string {
	entries := v.series.Distribution
	max := 0
	for _, e := range entries {
		if e.Count > max {
			max = e.Count
		}
	}
	if max == 0 {
		return noticeStyle.Render("no data")
	}

	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	for _, e := range entries {
		cells := e.Count * barWidth / max
		if cells < 1 {
			cells = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(labelColor(segment.FamilyRank(e.Label))).
			Render(strings.Repeat("█", cells))
		rows = append(rows, fmt.Sprintf("  %-15s %s %d", e.Label, bar, e.Count))
	}
	return strings.Join(rows, "\n")
}

// renderContinuous draws the intensity curve as a sparkline with the
// cursor marker.
func (v timelineView) renderContinuous(width int, cursor, duration float64) string {
	points := v.series.Continuous
	if len(points) == 0 || duration <= 0 {
		return noticeStyle.Render("no intensity data")
	}

	start := points[0].TimeSec
	span := duration - start
	if span <= 0 {
		span = 1
	}

	// Bin points into columns, keeping the max intensity per column.
	cols := make([]float64, width)
	hit := make([]bool, width)
	maxIntensity := 0.0
	for _, p := range points {
		if p.Intensity > maxIntensity {
			maxIntensity = p.Intensity
		}
	}
	if maxIntensity == 0 {
		maxIntensity = 1
	}
	for _, p := range points {
		col := int(float64(width) * (p.TimeSec - start) / span)
		if col < 0 {
			col = 0
		}
		if col >= width {
			col = width - 1
		}
		if !hit[col] || p.Intensity > cols[col] {
			cols[col] = p.Intensity
			hit[col] = true
		}
	}

	var line strings.Builder
	for i := 0; i < width; i++ {
		if !hit[i] {
			line.WriteByte(' ')
			continue
		}
		// Intensity is an unbounded float; negative scores still get a
		// glyph, at the floor.
		level := int(cols[i] / maxIntensity * float64(len(sparks)-1))
		if level < 0 {
			level = 0
		}
		if level >= len(sparks) {
			level = len(sparks) - 1
		}
		line.WriteRune(sparks[level])
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"  "+cursorRuler(width, cursor, start, span),
		"  "+line.String(),
		"  "+axisStyle.Render(fmt.Sprintf("%.0fs … %.0fs", start, start+span)),
	)
}
