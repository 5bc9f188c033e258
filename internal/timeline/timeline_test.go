package timeline

import (
	"testing"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func ev(startMs int, label string) segment.Event {
	return segment.Event{StartMs: startMs, Label: label}
}

func TestCounted(t *testing.T) {
	events := []segment.Event{
		ev(0, "joy"),
		ev(5000, "sadness"),
		ev(5000, "joy"),
	}
	vocab := []string{"joy", "sadness", "anger"}

	points := Counted(events, vocab)
	if len(points) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(points))
	}

	if points[0].TimeSec != 0 || points[1].TimeSec != 5 {
		t.Errorf("unexpected bucket times: %d, %d", points[0].TimeSec, points[1].TimeSec)
	}

	// Every vocabulary label has an entry, zero when absent.
	for _, p := range points {
		if len(p.Counts) != len(vocab) {
			t.Errorf("bucket at %d has %d labels, want %d", p.TimeMs, len(p.Counts), len(vocab))
		}
	}
	if points[0].Counts["joy"] != 1 || points[0].Counts["sadness"] != 0 {
		t.Errorf("bucket 0 counts wrong: %v", points[0].Counts)
	}
	if points[1].Counts["joy"] != 1 || points[1].Counts["sadness"] != 1 || points[1].Counts["anger"] != 0 {
		t.Errorf("bucket 1 counts wrong: %v", points[1].Counts)
	}
}

func TestCountedFloorSeconds(t *testing.T) {
	points := Counted([]segment.Event{ev(5900, "joy")}, []string{"joy"})
	if len(points) != 1 || points[0].TimeSec != 5 {
		t.Errorf("expected floor second 5, got %+v", points)
	}
}

func TestDistributionFamilyOrder(t *testing.T) {
	events := []segment.Event{
		ev(0, "sadness"),
		ev(1000, "joy"),
		ev(2000, "sadness"),
		ev(3000, "neutral"),
		ev(4000, "anger"),
	}

	entries := Distribution(events)
	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.Label
	}

	// neutral family, then happy, then sad, then mad.
	want := []string{"neutral", "joy", "sadness", "anger"}
	if len(order) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %q, want %q (full order %v)", i, order[i], want[i], order)
		}
	}
	if entries[2].Count != 2 {
		t.Errorf("sadness count = %d, want 2", entries[2].Count)
	}
}

func TestDistributionTiesWithinFamily(t *testing.T) {
	events := []segment.Event{
		ev(0, "joy"),
		ev(1000, "joy"),
		ev(2000, "amusement"),
	}

	entries := Distribution(events)
	if entries[0].Label != "joy" || entries[1].Label != "amusement" {
		t.Errorf("ties within family should break by descending count: %v", entries)
	}
}

func TestSegmentsGapFree(t *testing.T) {
	events := []segment.Event{
		ev(2000, "joy"),
		ev(7000, "sadness"),
		ev(11000, "anger"),
	}

	segs := Segments(events)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	if segs[0].StartSec != 2 {
		t.Errorf("series should start at minimum observed time, got %v", segs[0].StartSec)
	}
	for i := 0; i+1 < len(segs); i++ {
		if segs[i].EndSec != segs[i+1].StartSec {
			t.Errorf("gap between segment %d and %d: %v != %v", i, i+1, segs[i].EndSec, segs[i+1].StartSec)
		}
	}
	last := segs[len(segs)-1]
	if last.EndSec != last.StartSec+DefaultSegmentPadSeconds {
		t.Errorf("last segment not padded: %v -> %v", last.StartSec, last.EndSec)
	}
}

func TestBuildSelectsMode(t *testing.T) {
	plain := []segment.Event{ev(0, "joy"), ev(1000, "sadness")}
	s := Build(plain, segment.BasicLabels)
	if len(s.Segments) == 0 || len(s.Continuous) != 0 {
		t.Errorf("events without intensity should build the segment series")
	}

	withIntensity := []segment.Event{
		{StartMs: 0, Label: "joy", Intensity: 0.4, HasIntensity: true},
		{StartMs: 1000, Label: "sadness"},
	}
	s = Build(withIntensity, segment.BasicLabels)
	if len(s.Continuous) != 2 || len(s.Segments) != 0 {
		t.Errorf("any intensity score should select the continuous series, got %+v", s)
	}
	if s.Continuous[0].Intensity != 0.4 {
		t.Errorf("continuous point lost intensity: %+v", s.Continuous[0])
	}
}

func TestEmptyInput(t *testing.T) {
	s := Build(nil, segment.BasicLabels)
	if !s.Empty() {
		t.Error("empty input should yield an empty series, not an error")
	}
	if Counted(nil, segment.BasicLabels) != nil {
		t.Error("Counted(nil) should be nil")
	}
	if Distribution(nil) != nil {
		t.Error("Distribution(nil) should be nil")
	}
	if Segments(nil) != nil {
		t.Error("Segments(nil) should be nil")
	}
}

func TestEndToEndCountedAndDistribution(t *testing.T) {
	// Artifact rows (0:00:00,000 joy) and (0:00:05,000 sadness).
	events := []segment.Event{ev(0, "joy"), ev(5000, "sadness")}

	counted := Counted(events, segment.ProLabels)
	if len(counted) != 2 {
		t.Fatalf("expected buckets at t=0s and t=5s, got %d buckets", len(counted))
	}
	if counted[0].TimeSec != 0 || counted[1].TimeSec != 5 {
		t.Errorf("bucket times = %d, %d", counted[0].TimeSec, counted[1].TimeSec)
	}
	nonZero := func(p CountedPoint) int {
		n := 0
		for _, c := range p.Counts {
			if c > 0 {
				n++
			}
		}
		return n
	}
	if nonZero(counted[0]) != 1 || nonZero(counted[1]) != 1 {
		t.Error("each bucket should have exactly one non-zero label count")
	}

	dist := Distribution(events)
	if len(dist) != 2 {
		t.Fatalf("expected joy:1 sadness:1, got %v", dist)
	}
	if dist[0].Label != "joy" || dist[1].Label != "sadness" {
		t.Errorf("family precedence should order joy before sadness: %v", dist)
	}
	if dist[0].Count != 1 || dist[1].Count != 1 {
		t.Errorf("counts wrong: %v", dist)
	}
}
