package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rcliao/stasis-hunters/internal/model"
)

// WriteFile writes rec to path atomically: the JSON is written to a temp file in
// the same directory, synced, then renamed over path.
func WriteFile(path string, rec *Record) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename save: %w", err)
	}
	return nil
}

// ReadFile reads a record from path. A missing file wraps model.ErrNotFound and
// an unparsable one wraps model.ErrIntegrity. The record is not verified.
func ReadFile(path string) (*Record, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("save file %s: %w", path, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return DecodeRecord(b)
}

// DecodeRecord parses a record document.
func DecodeRecord(b []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("parse save record: %v: %w", err, model.ErrIntegrity)
	}
	return &rec, nil
}
