package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const filePerm = 0644

// File is the local copy of the events document
type File struct {
	path string
}

// Info describes the current state of the cache file
type Info struct {
	Path    string    `json:"path"`
	Exists  bool      `json:"exists"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time,omitempty"`
}

// New creates a File for path
func New(path string) *File {
	return &File{path: path}
}

// Path returns the destination path
func (f *File) Path() string {
	return f.path
}

// Write truncates the file and writes data in place.
// A crash mid-write can leave a truncated file.
func (f *File) Write(data []byte) error {
	if err := os.WriteFile(f.path, data, filePerm); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// WriteAtomic writes data to a temporary file next to the destination and renames
// it into place, so readers see either the old or the new contents.
func (f *File) WriteAtomic(data []byte) error {
	dir := filepath.Dir(f.path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	// No-op once the rename has succeeded.
	defer os.Remove(tmpName) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}

	return nil
}

// Read returns the current contents of the file
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	return data, nil
}

// Stat reports whether the file exists and, if so, its size and modification time.
// A missing file is not an error.
func (f *File) Stat() (*Info, error) {
	info := &Info{Path: f.path}

	fi, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return nil, fmt.Errorf("stat cache file: %w", err)
	}

	info.Exists = true
	info.Size = fi.Size()
	info.ModTime = fi.ModTime().UTC()
	return info, nil
}
