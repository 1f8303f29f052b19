package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

// Status values recorded for registration attempts.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Record is the persisted outcome of the last registration attempt for
// one tool identifier.
type Record struct {
	Identifier string    `json:"identifier"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Details    string    `json:"details,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// SaveRecord merges the record into the registration history file,
// overwriting any previous record for the same identifier. The parent
// directory is created on first use. A zero timestamp is filled in with
// the current time.
func SaveRecord(rec Record) error {
	if rec.Identifier == "" {
		return fmt.Errorf("saving registration record: identifier is required")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	path, err := userdata.GetRegistrationsPath()
	if err != nil {
		return err
	}

	records, err := readRecords(path)
	if err != nil {
		return err
	}
	records[rec.Identifier] = rec

	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating registration history directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registration history: %w", err)
	}
	if err := os.WriteFile(path, data, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing registration history: %w", err)
	}
	return nil
}

// GetRecord returns the record for the identifier, or nil if the tool has
// never been registered from this machine.
func GetRecord(identifier string) (*Record, error) {
	path, err := userdata.GetRegistrationsPath()
	if err != nil {
		return nil, err
	}
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	rec, ok := records[identifier]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// AllRecords returns every record sorted by identifier. A missing history
// file yields an empty slice.
func AllRecords() ([]Record, error) {
	path, err := userdata.GetRegistrationsPath()
	if err != nil {
		return nil, err
	}
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	all := make([]Record, 0, len(records))
	for _, rec := range records {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Identifier < all[j].Identifier })
	return all, nil
}

// ClearRecords removes the registration history file. Clearing an absent
// history is not an error.
func ClearRecords() error {
	path, err := userdata.GetRegistrationsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing registration history: %w", err)
	}
	return nil
}

// readRecords loads the keyed store, treating a missing file as empty.
func readRecords(path string) (map[string]Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registration history: %w", err)
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing registration history: %w", err)
	}
	return records, nil
}
