package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Defaults is a persistent key-value store backed by a JSON file, which
// remembers the current chat session and default models between runs.
type Defaults struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultsFile = "defaults.json"

	keySession    = "session"
	keyChatModel  = "chat_model"
	keyTextModel  = "text_model"
	keyCodeModel  = "code_model"
	keyImageModel = "image_model"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDefaults creates a store at the given file path, loading the file if
// it exists. With an empty path nothing is persisted.
func NewDefaults(path string) (*Defaults, error) {
	d := &Defaults{
		path: path,
		data: make(map[string]any),
	}
	if path == "" {
		return d, nil
	}

	// Load existing file (ignore if it doesn't exist)
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&d.data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString returns a string value, or an empty string if the key does not
// exist or the value is not a string
func (d *Defaults) GetString(key string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, _ := d.data[key].(string)
	return v
}

// Set stores a value and persists the store. Pass nil or an empty string
// to remove a key.
func (d *Defaults) Set(key string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if value == nil || value == "" {
		delete(d.data, key)
	} else {
		d.data[key] = value
	}
	return d.save()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (d *Defaults) save() error {
	if d.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, data, 0600)
}

// defaultsPath is the defaults file in the user config directory, or empty
// if there is none
func defaultsPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, name, defaultsFile)
}
