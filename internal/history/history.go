// Package history persists the archive of completed analysis runs.
//
// The archive is capacity-capped: Append evicts the oldest entries so the
// store never grows past MaxEntries. Persistence failures degrade the
// archive to an in-memory, session-only store rather than crashing the
// dashboard.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps the archive. Oldest entries are evicted first.
const MaxEntries = 50

// Entry is one completed analysis run.
type Entry struct {
	ID                string
	CreatedAt         time.Time
	SourceRef         string
	Plan              string
	ArtifactRef       string
	FeedbackSubmitted bool
}

// NewID builds a time-derived unique entry ID. The timestamp prefix keeps
// IDs sortable in the database; the uuid suffix keeps them unique when two
// runs complete within the same millisecond.
func NewID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UTC().UnixMilli(), uuid.NewString()[:8])
}

// Store is the archive interface. The dashboard uses the SQLite
// implementation; tests and the degraded mode use the in-memory one.
type Store interface {
	// Append records a completed run, evicting the oldest entries past
	// the capacity cap.
	Append(e Entry) error

	// List returns entries most-recent-first.
	List() ([]Entry, error)

	// Get returns the entry whose ArtifactRef matches, or false.
	Get(artifactRef string) (Entry, bool, error)

	// Remove deletes one entry by ID.
	Remove(id string) error

	// Clear empties the archive.
	Clear() error

	// MarkFeedbackSubmitted flips FeedbackSubmitted true for the entry
	// with the given artifact reference. The flag is monotonic; nothing
	// ever resets it.
	MarkFeedbackSubmitted(artifactRef string) error

	Close() error
}
