// Package feedback drives the human-in-the-loop correction cycle for one
// completed analysis run.
//
// A Session is a finite-state machine value transitioned by pure methods.
// The UI layer renders the current state and dispatches transition
// requests; every side effect (artifact fetch, submission, archive update)
// lives outside this package and reports back through SegmentsLoaded,
// SubmitFailed and Submitted.
package feedback

import (
	"errors"
	"fmt"

	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

// State is the session's position in the review/edit/confirm/submit cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePrompting
	StateEditing
	StateConfirming
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePrompting:
		return "prompting"
	case StateEditing:
		return "editing"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrAlreadySubmitted refuses session creation for an entry whose
	// feedback was already recorded.
	ErrAlreadySubmitted = errors.New("feedback already submitted for this run")

	// ErrNoChanges blocks the editing → confirming transition while no
	// label differs from the original.
	ErrNoChanges = errors.New("no labels changed")

	// ErrInvalidLabel rejects a label outside the session vocabulary.
	ErrInvalidLabel = errors.New("label not in vocabulary")

	// ErrBadTransition reports a transition request that is not legal
	// from the current state.
	ErrBadTransition = errors.New("transition not allowed in current state")
)

// Session is the transient state of one feedback interaction. Create one
// with NewSession, feed it the parsed artifact, then walk the cycle.
// Discarding a session in any non-submitted state has no externally
// visible effect.
type Session struct {
	Entry      history.Entry
	Vocabulary []string

	original []segment.Event // frozen snapshot, never mutated
	working  []segment.Event // relabeled copy, index-aligned with original

	state  State
	resume State // where a failed submission rolls back to
}

// NewSession opens feedback on a history entry. Entries whose feedback is
// already submitted are refused outright: no session is created.
func NewSession(entry history.Entry, vocabulary []string) (*Session, error) {
	if entry.FeedbackSubmitted {
		return nil, ErrAlreadySubmitted
	}
	return &Session{
		Entry:      entry,
		Vocabulary: vocabulary,
		state:      StateLoading,
	}, nil
}

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// Original returns the frozen segment snapshot.
func (s *Session) Original() []segment.Event { return s.original }

// Working returns the editable segment list.
func (s *Session) Working() []segment.Event { return s.working }

// SegmentsLoaded completes the artifact fetch: loading → prompting. The
// snapshot is frozen here; edits operate on a copy.
func (s *Session) SegmentsLoaded(events []segment.Event) error {
	if s.state != StateLoading {
		return fmt.Errorf("%w: segments loaded in %s", ErrBadTransition, s.state)
	}
	if len(events) == 0 {
		return errors.New("artifact contains no segments")
	}
	s.original = segment.Clone(events)
	s.working = segment.Clone(events)
	s.state = StatePrompting
	return nil
}

// LoadFailed aborts the session on a fetch or parse failure: the machine
// returns to idle and the session is dead. Fatal to the session only, not
// to the application.
func (s *Session) LoadFailed() {
	s.state = StateIdle
}

// Accept answers "the labeling is correct" at the prompt: prompting →
// submitting with an empty correction set.
func (s *Session) Accept() error {
	if s.state != StatePrompting {
		return fmt.Errorf("%w: accept in %s", ErrBadTransition, s.state)
	}
	s.resume = StatePrompting
	s.state = StateSubmitting
	return nil
}

// Reject answers "the labeling is wrong": prompting → editing.
func (s *Session) Reject() error {
	if s.state != StatePrompting {
		return fmt.Errorf("%w: reject in %s", ErrBadTransition, s.state)
	}
	s.state = StateEditing
	return nil
}

// SetLabel reassigns one segment's label while editing. Labels come from
// the session vocabulary; rows are never added or removed, so working and
// original stay index-aligned.
func (s *Session) SetLabel(index int, label string) error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: edit in %s", ErrBadTransition, s.state)
	}
	if index < 0 || index >= len(s.working) {
		return fmt.Errorf("segment index %d out of range", index)
	}
	if !segment.ValidLabel(label, s.Vocabulary) {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	s.working[index].Label = label
	return nil
}

// ChangedCount is the number of segments whose label differs from the
// original snapshot.
func (s *Session) ChangedCount() int {
	return len(Diff(s.original, s.working))
}

// Changes returns the current correction delta.
func (s *Session) Changes() []Change {
	return Diff(s.original, s.working)
}

// Review moves to the confirmation screen: editing → confirming. Blocked
// while nothing changed.
func (s *Session) Review() error {
	if s.state != StateEditing {
		return fmt.Errorf("%w: review in %s", ErrBadTransition, s.state)
	}
	if s.ChangedCount() == 0 {
		return ErrNoChanges
	}
	s.state = StateConfirming
	return nil
}

// Revise returns from confirmation to editing.
func (s *Session) Revise() error {
	if s.state != StateConfirming {
		return fmt.Errorf("%w: revise in %s", ErrBadTransition, s.state)
	}
	s.state = StateEditing
	return nil
}

// Confirm finalizes the corrections: confirming → submitting.
func (s *Session) Confirm() error {
	if s.state != StateConfirming {
		return fmt.Errorf("%w: confirm in %s", ErrBadTransition, s.state)
	}
	s.resume = StateConfirming
	s.state = StateSubmitting
	return nil
}

// HasCorrections reports whether this submission carries an edited
// segment set ({correct:false}) rather than a plain confirmation.
func (s *Session) HasCorrections() bool {
	return s.resume == StateConfirming
}

// SubmitFailed rolls the machine back to whichever state initiated the
// submission. No partial state is kept; the user may retry.
func (s *Session) SubmitFailed() error {
	if s.state != StateSubmitting {
		return fmt.Errorf("%w: submit failure in %s", ErrBadTransition, s.state)
	}
	s.state = s.resume
	return nil
}

// Submitted records a successful submission. Terminal: no transition
// leaves this state, and the caller flips the history entry's
// FeedbackSubmitted flag.
func (s *Session) Submitted() error {
	if s.state != StateSubmitting {
		return fmt.Errorf("%w: submitted in %s", ErrBadTransition, s.state)
	}
	s.state = StateSubmitted
	return nil
}
