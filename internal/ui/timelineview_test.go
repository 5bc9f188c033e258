package ui

import (
	"testing"
	"time"

	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/playback"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func newTestTimelineView() timelineView {
	transport := playback.NewTransport(0)
	poller := playback.NewPoller(transport, time.Second)
	v := newTimelineView(transport, poller)
	v.SetSize(60, 30)
	return v
}

func TestContinuousRenderNegativeIntensity(t *testing.T) {
	v := newTestTimelineView()
	v.SetArtifact(history.Entry{Plan: "basic"}, []segment.Event{
		{StartMs: 0, Label: "sad", Intensity: -0.5, HasIntensity: true},
		{StartMs: 2000, Label: "happy", Intensity: 0.8, HasIntensity: true},
	}, segment.BasicLabels)

	// Intensity is an unbounded float; a below-zero score must render,
	// not panic.
	if out := v.View(); out == "" {
		t.Fatal("empty render for continuous series")
	}
}

func TestContinuousRenderAllNegativeIntensity(t *testing.T) {
	v := newTestTimelineView()
	v.SetArtifact(history.Entry{Plan: "basic"}, []segment.Event{
		{StartMs: 0, Label: "sad", Intensity: -1.5, HasIntensity: true},
		{StartMs: 1000, Label: "mad", Intensity: -0.2, HasIntensity: true},
	}, segment.BasicLabels)

	if out := v.View(); out == "" {
		t.Fatal("empty render for all-negative intensity series")
	}
}
