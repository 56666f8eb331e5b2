package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileError represents a failure reading or decoding a form file
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("form file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("form file %s: %s", e.Path, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// FileSource is a Source backed by a YAML or JSON document of field values.
// The format is chosen by extension; anything other than .json is read as YAML.
// Set only changes the in-memory copy; Reload discards it.
type FileSource struct {
	*MapSource
	path string
}

// OpenFile reads path into a new FileSource.
func OpenFile(path string) (*FileSource, error) {
	fs := &FileSource{MapSource: NewMapSource(nil), path: path}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the file backing the source.
func (f *FileSource) Path() string {
	return f.path
}

// Reload re-reads the file, replacing every value.
func (f *FileSource) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return &FileError{Path: f.path, Message: "failed to read", Cause: err}
	}

	values, err := decodeFields(f.path, data)
	if err != nil {
		return &FileError{Path: f.path, Message: "failed to decode", Cause: err}
	}

	f.mu.Lock()
	f.values = values
	f.mu.Unlock()
	return nil
}

// UnknownFields returns the keys in the file that are not form fields, sorted.
func (f *FileSource) UnknownFields() []string {
	var unknown []string
	for _, key := range f.Keys() {
		if !IsField(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func decodeFields(path string, data []byte) (map[string]string, error) {
	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
		return values, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
