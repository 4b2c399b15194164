package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sigreer/lvmgod/internal/lvm"
)

// Document is the on-disk form of a snapshot. The derived overall verdict is
// stored alongside the snapshot fields so consumers need no LVM logic.
type Document struct {
	Status lvm.Status `json:"overall_status"`
	lvm.HealthSnapshot
}

// NewDocument pairs a snapshot with its derived verdict.
func NewDocument(snap *lvm.HealthSnapshot) Document {
	return Document{Status: snap.OverallStatus(), HealthSnapshot: *snap}
}

// WriteJSON serializes the snapshot to path with two-space indentation as a
// single buffered write.
func WriteJSON(path string, snap *lvm.HealthSnapshot) error {
	data, err := json.MarshalIndent(NewDocument(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadJSON loads a previously exported snapshot document.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &doc, nil
}
