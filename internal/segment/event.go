// Package segment defines the emotion event model shared by the timeline
// aggregator and the feedback workflow, plus the CSV artifact codec that
// normalizes inference-pipeline output at the parse boundary.
package segment

// Event is one timestamped, labeled unit of detected affect parsed from a
// result artifact.
//
// Events are treated as immutable once parsed. The feedback workflow copies
// events before relabeling so the original list survives for diffing.
type Event struct {
	StartMs       int
	EndMs         int
	HasEnd        bool
	Label         string
	Text          string
	Translation   string
	Confidence    float64
	HasConfidence bool
	Intensity     float64
	HasIntensity  bool
}

// Clone returns a copy of the slice. Event itself is a value type, so a
// shallow slice copy is a full copy.
func Clone(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
