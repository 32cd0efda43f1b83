package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	jsonExt              = ".json"
	DirPerm  os.FileMode = 0o700 // Directory permission for the store
	FilePerm os.FileMode = 0o600 // File permission for transcript files
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// FileStore is a file-backed implementation of Store.
// Each transcript is stored as {id}.json in a directory.
// It is safe for concurrent use.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = (*FileStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileStore creates a new file-backed transcript store in the given
// directory, which is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, modalica.ErrBadParameter.With("directory is required")
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return nil, modalica.ErrInternalServerError.Withf("mkdir: %v", err)
	}
	return &FileStore{dir: dir}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Create creates a new transcript with a unique ID, writes it to disk,
// and returns it.
func (f *FileStore) Create(_ context.Context, meta schema.TranscriptMeta) (*schema.Transcript, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := newTranscript(uuid.New().String(), meta)
	if err := f.write(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a transcript by ID from disk.
func (f *FileStore) Get(_ context.Context, id string) (*schema.Transcript, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.read(id)
}

// List returns transcripts from disk, ordered by last modified time
// (most recent first), with pagination support.
func (f *FileStore) List(_ context.Context, req schema.ListTranscriptRequest) (*schema.ListTranscriptResponse, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, modalica.ErrInternalServerError.Withf("readdir: %v", err)
	}

	result := make([]*schema.Transcript, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jsonExt) {
			continue
		}
		t, err := f.read(strings.TrimSuffix(entry.Name(), jsonExt))
		if err != nil {
			continue // skip corrupt files
		}
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Modified.After(result[j].Modified)
	})

	return paginate(result, req), nil
}

// Delete removes a transcript file by ID.
func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path, err := f.path(id)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return modalica.ErrNotFound.Withf("transcript %q", id)
	}
	if err := os.Remove(path); err != nil {
		return modalica.ErrInternalServerError.Withf("remove: %v", err)
	}
	return nil
}

// Write persists the current state of a transcript to disk.
func (f *FileStore) Write(t *schema.Transcript) error {
	if t == nil {
		return modalica.ErrBadParameter.With("transcript is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(t)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// path returns the file path for a transcript ID. Only uuids can name
// a transcript.
func (f *FileStore) path(id string) (string, error) {
	if err := uuid.Validate(id); err != nil {
		return "", modalica.ErrNotFound.Withf("transcript %q", id)
	}
	return filepath.Join(f.dir, id+jsonExt), nil
}

// write serialises a transcript to its JSON file.
func (f *FileStore) write(t *schema.Transcript) error {
	path, err := f.path(t.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return modalica.ErrInternalServerError.Withf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, FilePerm); err != nil {
		return modalica.ErrInternalServerError.Withf("write: %v", err)
	}
	return nil
}

// read deserialises a transcript from its JSON file.
func (f *FileStore) read(id string) (*schema.Transcript, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, modalica.ErrNotFound.Withf("transcript %q", id)
		}
		return nil, modalica.ErrInternalServerError.Withf("read: %v", err)
	}
	var t schema.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, modalica.ErrInternalServerError.Withf("unmarshal: %v", err)
	}
	return &t, nil
}
