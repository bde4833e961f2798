package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every key in one JSON document on disk. Writes go through a
// temp file and rename so a crash never leaves a half-written document.
type File struct {
	mu   sync.Mutex
	path string
}

// OpenFile returns a store backed by the JSON document at path. The file is
// created on first Set.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("kv file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating kv dir: %w", err)
	}
	return &File{path: path}, nil
}

// ErrCorrupt marks a document on disk that does not parse.
var ErrCorrupt = errors.New("kv file is corrupt")

func (f *File) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("reading kv file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing kv file: %w: %w", ErrCorrupt, err)
	}
	return doc, nil
}

// Get implements Store.
func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Set implements Store. The value must be valid JSON. A corrupt document is
// moved aside to <path>.corrupt and replaced by a fresh one.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("writing key %q: value is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	switch {
	case errors.Is(err, ErrCorrupt):
		if err := os.Rename(f.path, f.path+".corrupt"); err != nil {
			return fmt.Errorf("moving corrupt kv file: %w", err)
		}
		doc = map[string]json.RawMessage{}
	case err != nil:
		return err
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding kv file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing kv file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing kv file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing kv file: %w", err)
	}
	return os.Rename(tmpPath, f.path)
}

// Close implements Store. File holds no open handles.
func (f *File) Close() error { return nil }
