package history

import "sync"

// MemStore is the in-memory archive used when persistence is degraded and
// by tests. Same cap and ordering semantics as the SQLite store.
type MemStore struct {
	mu      sync.Mutex
	entries []Entry // append order: oldest first
}

// NewMemStore returns an empty in-memory archive.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, e)
	if over := len(m.entries) - MaxEntries; over > 0 {
		m.entries = append([]Entry(nil), m.entries[over:]...)
	}
	return nil
}

func (m *MemStore) List() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *MemStore) Get(artifactRef string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.ArtifactRef == artifactRef {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func (m *MemStore) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func (m *MemStore) MarkFeedbackSubmitted(artifactRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ArtifactRef == artifactRef {
			m.entries[i].FeedbackSubmitted = true
		}
	}
	return nil
}

func (m *MemStore) Close() error { return nil }
