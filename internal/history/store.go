// Package history persists the conversation transcript to a local JSON file,
// the desktop analog of the web app's localStorage. The core never reads it
// directly; callers load it at session start for rehydration and append one
// entry per turn.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cosmusapp/cosmus-go/internal/models"
)

// Entry is one persisted conversation turn.
type Entry struct {
	ID        string      `json:"id"`
	Role      models.Role `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// Store reads and appends conversation entries in a single JSON file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store at the given file path. The parent directory is
// created on the first append.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns all persisted entries in order. A missing file is an empty
// history, not an error.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return entries, nil
}

// Turns converts the persisted entries into the rehydration format: only the
// role and text survive; IDs and timestamps are display-side bookkeeping.
func (s *Store) Turns() ([]models.ConversationTurn, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	turns := make([]models.ConversationTurn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, models.ConversationTurn{Role: e.Role, Text: e.Text})
	}
	return turns, nil
}

// Append persists one turn and returns the stored entry.
func (s *Store) Append(role models.Role, text string) (Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	entries = append(entries, entry)

	if err := s.write(entries); err != nil {
		return Entry{}, err
	}

	s.logger.Debug("history entry appended", "id", entry.ID, "role", role)
	return entry, nil
}

// Clear removes the whole transcript.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *Store) write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	// Write-then-rename keeps the transcript intact if we crash mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
