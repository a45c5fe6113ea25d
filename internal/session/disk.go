package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/bimmerbailey/sanictl/internal/mask"
)

// DiskStore persists RehydrationMaps as JSON documents under a directory,
// one file per session, via an afero filesystem (spec §4.6). Put writes to
// a temporary file and renames it into place so Get never observes a
// partial write; a per-store mutex serializes operations on the same
// filesystem root, since afero.Fs gives no cross-process locking of its
// own.
type DiskStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// NewDiskStore constructs a DiskStore rooted at dir, creating it if
// necessary. Pass afero.NewOsFs() for real disk I/O, or an afero.MemMapFs
// in tests.
func NewDiskStore(fs afero.Fs, dir string) (*DiskStore, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session store directory: %w", err)
	}
	return &DiskStore{fs: fs, dir: dir}, nil
}

func (s *DiskStore) path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

func (s *DiskStore) Put(sessionID string, m *mask.RehydrationMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(m.Entries())
	if err != nil {
		return fmt.Errorf("encode rehydration map: %w", err)
	}

	tmp := s.path(sessionID) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("write session %q: %w", sessionID, err)
	}
	if err := s.fs.Rename(tmp, s.path(sessionID)); err != nil {
		return fmt.Errorf("commit session %q: %w", sessionID, err)
	}
	return nil
}

func (s *DiskStore) Get(sessionID string) (*mask.RehydrationMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := afero.ReadFile(s.fs, s.path(sessionID))
	if os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %q: %w", sessionID, err)
	}

	var entries []mask.RehydrationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", sessionID, err)
	}
	return mask.FromEntries(entries), nil
}

func (s *DiskStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path(sessionID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
