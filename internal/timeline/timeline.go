// Package timeline derives presentation-ready series from parsed emotion
// events. Every function here is pure: the same event list always produces
// the same series, and nothing is persisted.
package timeline

import (
	"sort"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

// DefaultSegmentPadSeconds pads the final stripe segment, which has no
// successor to borrow an end time from.
const DefaultSegmentPadSeconds = 5.0

// CountedPoint is one bucket of the counted series: a distinct timestamp
// with a per-label event count. Counts carry a zero entry for every label
// in the vocabulary so charts render consistent stacks.
type CountedPoint struct {
	TimeMs  int
	TimeSec int
	Counts  map[string]int
}

// Counted groups events by exact start offset. One bucket per distinct
// timestamp present in the data, ascending; TimeSec uses floor semantics
// for display.
func Counted(events []segment.Event, vocabulary []string) []CountedPoint {
	if len(events) == 0 {
		return nil
	}

	byStart := make(map[int]map[string]int)
	for _, ev := range events {
		counts, ok := byStart[ev.StartMs]
		if !ok {
			counts = make(map[string]int, len(vocabulary))
			for _, label := range vocabulary {
				counts[label] = 0
			}
			byStart[ev.StartMs] = counts
		}
		counts[ev.Label]++
	}

	points := make([]CountedPoint, 0, len(byStart))
	for ms, counts := range byStart {
		points = append(points, CountedPoint{TimeMs: ms, TimeSec: ms / 1000, Counts: counts})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].TimeMs < points[j].TimeMs })
	return points
}

// DistributionEntry is one label's population count.
type DistributionEntry struct {
	Label string
	Count int
}

// Distribution counts every label across the full event list, ordered by
// emotion-family precedence with ties inside a family broken by descending
// count, then label for determinism.
func Distribution(events []segment.Event) []DistributionEntry {
	if len(events) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Label]++
	}

	entries := make([]DistributionEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, DistributionEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		ri, rj := segment.FamilyRank(entries[i].Label), segment.FamilyRank(entries[j].Label)
		if ri != rj {
			return ri < rj
		}
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// ContinuousPoint is one sample of the intensity curve.
type ContinuousPoint struct {
	TimeSec    float64
	Intensity  float64
	Label      string
	Confidence float64
}

// Continuous produces the intensity curve: one point per event, sorted by
// time. Events without an intensity score contribute a zero-intensity
// point so the curve still covers the full timeline.
func Continuous(events []segment.Event) []ContinuousPoint {
	if len(events) == 0 {
		return nil
	}

	points := make([]ContinuousPoint, 0, len(events))
	for _, ev := range events {
		points = append(points, ContinuousPoint{
			TimeSec:    float64(ev.StartMs) / 1000,
			Intensity:  ev.Intensity,
			Label:      ev.Label,
			Confidence: ev.Confidence,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].TimeSec < points[j].TimeSec })
	return points
}

// Segment is one contiguous labeled interval of the stripe view.
type Segment struct {
	StartSec float64
	EndSec   float64
	Label    string
}

// Segments partitions the timeline into a gap-free sequence of labeled
// intervals starting at the minimum observed time. Each segment ends where
// the next begins; the last is padded by DefaultSegmentPadSeconds.
func Segments(events []segment.Event) []Segment {
	if len(events) == 0 {
		return nil
	}

	sorted := segment.Clone(events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartMs < sorted[j].StartMs })

	segments := make([]Segment, 0, len(sorted))
	for i, ev := range sorted {
		start := float64(ev.StartMs) / 1000
		var end float64
		if i+1 < len(sorted) {
			end = float64(sorted[i+1].StartMs) / 1000
		} else {
			end = start + DefaultSegmentPadSeconds
		}
		segments = append(segments, Segment{StartSec: start, EndSec: end, Label: ev.Label})
	}
	return segments
}

// HasIntensity reports whether any event carries an intensity score, which
// selects the continuous curve over the stripe view.
func HasIntensity(events []segment.Event) bool {
	for _, ev := range events {
		if ev.HasIntensity {
			return true
		}
	}
	return false
}

// Series bundles every derived representation the dashboard renders for
// one artifact.
type Series struct {
	Counted      []CountedPoint
	Distribution []DistributionEntry
	Continuous   []ContinuousPoint
	Segments     []Segment
}

// Build recomputes the full series bundle for an artifact. Either
// Continuous or Segments is populated depending on whether any event
// carries an intensity score; the other stays empty.
func Build(events []segment.Event, vocabulary []string) Series {
	s := Series{
		Counted:      Counted(events, vocabulary),
		Distribution: Distribution(events),
	}
	if HasIntensity(events) {
		s.Continuous = Continuous(events)
	} else {
		s.Segments = Segments(events)
	}
	return s
}

// Empty reports whether the series has nothing to render; views show a
// "no data" notice instead of a blank chart.
func (s Series) Empty() bool {
	return len(s.Counted) == 0
}
