package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSnapshotPath is the fixed application key under which the session
// snapshot is stored.
const DefaultSnapshotPath = "cinevault_session.json"

// SnapshotStore persists the serialized session snapshot. Each write is a
// full overwrite; concurrent writers have last-write-wins semantics, which
// is acceptable for the single-user assumption.
type SnapshotStore interface {
	// Load returns the persisted session, or nil when none exists. A
	// corrupt snapshot is treated as absent and cleared.
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore keeps the snapshot as a JSON file on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore at path, or at DefaultSnapshotPath when
// path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		// Unparseable snapshot: treat as no session and drop the file.
		_ = os.Remove(f.path)
		return nil, nil
	}
	return &sess, nil
}

func (f *FileStore) Save(sess *Session) error {
	blob, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, blob, 0o600)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore keeps the snapshot in memory, for tests and demos.
type MemoryStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(m.blob, &sess); err != nil {
		m.blob = nil
		return nil, nil
	}
	return &sess, nil
}

func (m *MemoryStore) Save(sess *Session) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blob = blob
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.blob = nil
	m.mu.Unlock()
	return nil
}
