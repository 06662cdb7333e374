package duckdb

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Run describes one validation pass over a file.
type Run struct {
	ID        string
	File      FileFingerprint
	StartedAt time.Time
	Lines     int
	Warnings  int
	Errors    int
}

// NewRun starts a run for file with a fresh identifier.
func NewRun(file FileFingerprint) Run {
	return Run{
		ID:        uuid.NewString(),
		File:      file,
		StartedAt: time.Now().UTC(),
	}
}
