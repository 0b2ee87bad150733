package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/thedittmer/informant/internal/models"
)

// ErrPermission is returned by Save when the state file or its directory is
// not writable by the current user.
var ErrPermission = errors.New("permission denied")

type Storage struct {
	path   string
	logger *log.Logger
}

func NewStorage(path string, logger *log.Logger) *Storage {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Storage{path: path, logger: logger}
}

func (s *Storage) Path() string {
	return s.path
}

// Load never fails: a missing, unreadable or corrupt state file yields an
// empty state.
func (s *Storage) Load() *models.State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Printf("Ignoring unreadable state file %s: %v", s.path, err)
		}
		return models.NewState()
	}

	state := models.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		s.logger.Printf("Ignoring corrupt state file %s: %v", s.path, err)
		return models.NewState()
	}

	if state.Version > models.StateVersion {
		s.logger.Printf("Ignoring state file %s with unknown version %d", s.path, state.Version)
		return models.NewState()
	}
	state.Version = models.StateVersion

	s.logger.Printf("Loaded state from %s: %d read items, %d cached items",
		s.path, state.ReadList.Len(), len(state.Cache.Feed))
	return state
}

func (s *Storage) Save(state *models.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return s.wrap("error creating state directory", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}

	// Write to a sibling temp file first so a crash never truncates the
	// existing state.
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return s.wrap("error writing temporary state", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return s.wrap("error saving state", err)
	}

	s.logger.Printf("Saved state to %s with %d read items", s.path, state.ReadList.Len())
	return nil
}

func (s *Storage) wrap(msg string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w: %v", msg, ErrPermission, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
