package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ExportSnapshot serializes doc to path as msgpack, via a temp file and
// rename so a crash mid-write never leaves a truncated snapshot behind.
func ExportSnapshot(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: failed to create snapshot dir: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "snapshot-*.mp")
	if err != nil {
		return fmt.Errorf("config: failed to create snapshot temp file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("config: failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: failed to close snapshot temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}

// ImportSnapshot reads a msgpack-encoded Document previously written by
// ExportSnapshot.
func ImportSnapshot(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("config: failed to open snapshot: %w", err)
	}
	defer f.Close()

	var doc Document
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("config: failed to decode snapshot: %w", err)
	}
	return doc, nil
}
