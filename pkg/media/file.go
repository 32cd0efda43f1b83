/*
media has helpers for the files sent to and received from the Modalica
API: opening batches of local files for upload, and decoding the
base64-encoded images returned by image generation.
*/
package media

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// File is a named file ready for upload
type File struct {
	Name string
	Body io.ReadCloser
}

// Files is a batch of files which are closed together
type Files []File

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Open opens between one and one hundred local files for upload. Each file
// is named by the base of its path. On error no files are left open.
func Open(paths ...string) (Files, error) {
	if n := len(paths); n < 1 || n > schema.MaxUploadFiles {
		return nil, modalica.ErrBadParameter.Withf("expected between 1 and %d files, got %d", schema.MaxUploadFiles, n)
	}

	result := make(Files, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			result.Close()
			if errors.Is(err, os.ErrNotExist) {
				return nil, modalica.ErrNotFound.Withf("%q", path)
			}
			return nil, err
		}
		if info, err := f.Stat(); err != nil {
			f.Close()
			result.Close()
			return nil, err
		} else if info.IsDir() {
			f.Close()
			result.Close()
			return nil, modalica.ErrBadParameter.Withf("%q is a directory", path)
		}
		result = append(result, File{Name: filepath.Base(path), Body: f})
	}

	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Names returns the name of each file
func (f Files) Names() []string {
	result := make([]string, 0, len(f))
	for _, file := range f {
		result = append(result, file.Name)
	}
	return result
}

// Close closes every file, returning all errors
func (f Files) Close() error {
	var result error
	for _, file := range f {
		if file.Body != nil {
			result = errors.Join(result, file.Body.Close())
		}
	}
	return result
}
