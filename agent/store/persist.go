package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON array of records from path. A missing or malformed
// file yields an empty slice, never an error: the caller starts from a
// clean collection and the next save repairs the file.
func LoadFile[T any](path string) []T {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// SaveFile writes records to path as indented JSON. Callers invoke it after
// every mutating operation; the stores themselves never persist.
func SaveFile[T any](path string, records []T) error {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
