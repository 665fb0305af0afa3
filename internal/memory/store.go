// Package memory is the persistence collaborator: every processed
// document is appended to a JSON-array log file and optionally mirrored
// to a keyed sqlite store for thread lookups. The file append is the
// primary write; a mirror failure is logged and swallowed, never rolled
// back or propagated.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/repository"
	"github.com/intakehq/document-router-api/internal/utils"
)

type Store struct {
	logFile string
	mirror  repository.Repository // nil disables mirroring
	logger  *utils.Logger

	// Serializes the read-modify-write cycle on the log file.
	mu sync.Mutex
}

func NewStore(logFile string, mirror repository.Repository, logger *utils.Logger) *Store {
	return &Store{
		logFile: logFile,
		mirror:  mirror,
		logger:  logger,
	}
}

// Log appends an entry to the log file and mirrors it. Missing ID,
// ThreadID and Timestamp fields are filled in; the completed entry is
// returned. When key is non-empty the entry is also set under that key
// in the mirror's key-value surface.
func (s *Store) Log(ctx context.Context, entry models.LogEntry, key string) (models.LogEntry, error) {
	if entry.ID == "" {
		entry.ID = utils.GenerateID()
	}
	if entry.ThreadID == "" {
		entry.ThreadID = utils.GenerateID()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
	}

	if err := s.appendToFile(entry); err != nil {
		return entry, err
	}

	if s.mirror != nil {
		if err := s.mirror.InsertEntry(ctx, entry); err != nil {
			s.logger.Warn("Mirror store logging skipped", "error", err, "entry_id", entry.ID)
		}
		if key != "" {
			if err := s.mirror.SetValue(ctx, key, entry); err != nil {
				s.logger.Warn("Mirror store key set skipped", "error", err, "key", key)
			}
		}
	}

	return entry, nil
}

// appendToFile is a read-modify-write over the whole array: any read
// failure is treated as an empty log.
func (s *Store) appendToFile(entry models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []models.LogEntry
	if data, err := os.ReadFile(s.logFile); err == nil {
		if err := json.Unmarshal(data, &logs); err != nil {
			logs = nil
		}
	}

	logs = append(logs, entry)

	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.logFile), 0755); err != nil {
		return err
	}

	return os.WriteFile(s.logFile, data, 0644)
}

// ThreadHistory returns the mirror's entries for a thread, oldest first.
// Without a mirror it returns an empty list.
func (s *Store) ThreadHistory(ctx context.Context, threadID string) ([]models.LogEntry, error) {
	if s.mirror == nil {
		return []models.LogEntry{}, nil
	}
	return s.mirror.ThreadHistory(ctx, threadID)
}

// SetValue stores data under key in the mirror. A no-op without one.
func (s *Store) SetValue(ctx context.Context, key string, value any) error {
	if s.mirror == nil {
		return nil
	}
	return s.mirror.SetValue(ctx, key, value)
}

// GetValue retrieves the value stored under key, nil when absent or when
// no mirror is configured.
func (s *Store) GetValue(ctx context.Context, key string) (models.Result, error) {
	if s.mirror == nil {
		return nil, nil
	}
	return s.mirror.GetValue(ctx, key)
}
