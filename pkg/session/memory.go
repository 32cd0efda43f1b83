package session

import (
	"context"
	"sort"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemoryStore is an in-memory implementation of Store.
// It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string]*schema.Transcript
}

var _ Store = (*MemoryStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemoryStore creates a new empty in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transcripts: make(map[string]*schema.Transcript),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Create creates a new transcript with a unique ID and returns it.
func (m *MemoryStore) Create(_ context.Context, meta schema.TranscriptMeta) (*schema.Transcript, error) {
	t := newTranscript(uuid.New().String(), meta)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[t.ID] = cloneTranscript(t)

	return t, nil
}

// Get retrieves a copy of a transcript by ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*schema.Transcript, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.transcripts[id]
	if !ok {
		return nil, modalica.ErrNotFound.Withf("transcript %q", id)
	}
	return cloneTranscript(t), nil
}

// List returns transcripts ordered by last modified time (most recent first).
func (m *MemoryStore) List(_ context.Context, req schema.ListTranscriptRequest) (*schema.ListTranscriptResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*schema.Transcript, 0, len(m.transcripts))
	for _, t := range m.transcripts {
		result = append(result, cloneTranscript(t))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Modified.After(result[j].Modified)
	})

	return paginate(result, req), nil
}

// Delete removes a transcript by ID.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transcripts[id]; !ok {
		return modalica.ErrNotFound.Withf("transcript %q", id)
	}
	delete(m.transcripts, id)
	return nil
}

// Write stores a copy of the transcript, which must already exist.
func (m *MemoryStore) Write(t *schema.Transcript) error {
	if t == nil {
		return modalica.ErrBadParameter.With("transcript is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transcripts[t.ID]; !ok {
		return modalica.ErrNotFound.Withf("transcript %q", t.ID)
	}
	m.transcripts[t.ID] = cloneTranscript(t)
	return nil
}
