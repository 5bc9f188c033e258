package feedback

import (
	"errors"
	"testing"

	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func testEvents() []segment.Event {
	return []segment.Event{
		{StartMs: 0, Label: "joy", Text: "first"},
		{StartMs: 5000, Label: "sadness", Text: "second"},
	}
}

func newPromptingSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(history.Entry{ArtifactRef: "result.csv"}, segment.ProLabels)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.State() != StateLoading {
		t.Fatalf("new session state = %s, want loading", s.State())
	}
	if err := s.SegmentsLoaded(testEvents()); err != nil {
		t.Fatalf("SegmentsLoaded failed: %v", err)
	}
	return s
}

func TestAlreadySubmittedRefused(t *testing.T) {
	_, err := NewSession(history.Entry{FeedbackSubmitted: true}, segment.BasicLabels)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestLoadFailureKillsSession(t *testing.T) {
	s, _ := NewSession(history.Entry{}, segment.BasicLabels)
	s.LoadFailed()
	if s.State() != StateIdle {
		t.Errorf("state after load failure = %s, want idle", s.State())
	}
	if err := s.SegmentsLoaded(testEvents()); err == nil {
		t.Error("dead session should refuse SegmentsLoaded")
	}
}

func TestAcceptPath(t *testing.T) {
	s := newPromptingSession(t)

	if err := s.Accept(); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if s.State() != StateSubmitting {
		t.Fatalf("state = %s, want submitting", s.State())
	}
	if s.HasCorrections() {
		t.Error("accept path should carry no corrections")
	}
	if err := s.Submitted(); err != nil {
		t.Fatalf("Submitted failed: %v", err)
	}
	if s.State() != StateSubmitted {
		t.Errorf("state = %s, want submitted", s.State())
	}
}

func TestEditPath(t *testing.T) {
	s := newPromptingSession(t)

	if err := s.Reject(); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	// Confirming is blocked while nothing changed.
	if err := s.Review(); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("Review with no changes: got %v, want ErrNoChanges", err)
	}

	if err := s.SetLabel(1, "anger"); err != nil {
		t.Fatalf("SetLabel failed: %v", err)
	}
	if got := s.ChangedCount(); got != 1 {
		t.Fatalf("ChangedCount = %d, want 1", got)
	}

	if err := s.Review(); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	changes := s.Changes()
	if len(changes) != 1 || changes[0].Index != 1 || changes[0].From != "sadness" || changes[0].To != "anger" {
		t.Fatalf("unexpected changes: %+v", changes)
	}

	if err := s.Confirm(); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !s.HasCorrections() {
		t.Error("confirm path should carry corrections")
	}

	// All other labels unchanged.
	if s.Working()[0].Label != "joy" {
		t.Errorf("untouched label mutated: %q", s.Working()[0].Label)
	}
	// Original snapshot never mutated.
	if s.Original()[1].Label != "sadness" {
		t.Errorf("original snapshot mutated: %q", s.Original()[1].Label)
	}

	if err := s.Submitted(); err != nil {
		t.Fatalf("Submitted failed: %v", err)
	}
}

func TestReviseReturnsToEditing(t *testing.T) {
	s := newPromptingSession(t)
	s.Reject()
	s.SetLabel(0, "anger")
	s.Review()

	if err := s.Revise(); err != nil {
		t.Fatalf("Revise failed: %v", err)
	}
	if s.State() != StateEditing {
		t.Errorf("state = %s, want editing", s.State())
	}

	// Undoing the edit blocks confirmation again.
	s.SetLabel(0, "joy")
	if err := s.Review(); !errors.Is(err, ErrNoChanges) {
		t.Errorf("Review after undo: got %v, want ErrNoChanges", err)
	}
}

func TestSubmitFailureRollsBack(t *testing.T) {
	// From the prompting path.
	s := newPromptingSession(t)
	s.Accept()
	if err := s.SubmitFailed(); err != nil {
		t.Fatalf("SubmitFailed failed: %v", err)
	}
	if s.State() != StatePrompting {
		t.Errorf("rollback state = %s, want prompting", s.State())
	}

	// From the confirming path.
	s = newPromptingSession(t)
	s.Reject()
	s.SetLabel(1, "anger")
	s.Review()
	s.Confirm()
	if err := s.SubmitFailed(); err != nil {
		t.Fatalf("SubmitFailed failed: %v", err)
	}
	if s.State() != StateConfirming {
		t.Errorf("rollback state = %s, want confirming", s.State())
	}

	// Retry succeeds.
	if err := s.Confirm(); err != nil {
		t.Fatalf("retry Confirm failed: %v", err)
	}
	if err := s.Submitted(); err != nil {
		t.Fatalf("retry Submitted failed: %v", err)
	}
}

func TestSetLabelValidation(t *testing.T) {
	s := newPromptingSession(t)

	// Editing is only legal after Reject.
	if err := s.SetLabel(0, "anger"); !errors.Is(err, ErrBadTransition) {
		t.Errorf("SetLabel while prompting: got %v, want ErrBadTransition", err)
	}

	s.Reject()
	if err := s.SetLabel(0, "not-an-emotion"); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("invalid label: got %v, want ErrInvalidLabel", err)
	}
	if err := s.SetLabel(99, "anger"); err == nil {
		t.Error("out-of-range index accepted")
	}
}

func TestDiff(t *testing.T) {
	a := []segment.Event{{Label: "joy"}, {Label: "sadness"}}
	b := []segment.Event{{Label: "joy"}, {Label: "anger"}}

	changes := Diff(a, b)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0] != (Change{Index: 1, From: "sadness", To: "anger"}) {
		t.Errorf("unexpected change: %+v", changes[0])
	}
}

func TestDiffEqualInputs(t *testing.T) {
	x := testEvents()
	if got := Diff(x, segment.Clone(x)); len(got) != 0 {
		t.Errorf("Diff(X, X) = %v, want empty", got)
	}
	if got := Diff(nil, nil); len(got) != 0 {
		t.Errorf("Diff(nil, nil) = %v, want empty", got)
	}
}

func TestDiffLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	Diff([]segment.Event{{Label: "joy"}}, nil)
}
