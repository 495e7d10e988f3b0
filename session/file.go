package session

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DirEnv overrides the base directory for file-backed session state.
const DirEnv = "SULTHAN_SESSION_DIR"

// DefaultDir resolves the base directory for file-backed session state.
// Precedence:
//  1. SULTHAN_SESSION_DIR, if set and non-empty
//  2. os.UserCacheDir()/sulthan-perfume/session
//
// Returns ("", false) if a base cannot be resolved.
func DefaultDir() (string, bool) {
	if d, ok := os.LookupEnv(DirEnv); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "sulthan-perfume", "session"), true
	}
	return "", false
}

// FileStore is a session store persisted as one file per key. It lets a
// command-line client keep its pre-cart items and count cache between
// invocations, the way a page keeps them between navigations.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file-backed session store rooted at dir,
// creating the directory if needed. An empty dir resolves via DefaultDir;
// if no base can be resolved, ErrNoSessionDir is returned.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		resolved, ok := DefaultDir()
		if !ok {
			return nil, ErrNoSessionDir
		}
		dir = resolved
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing this store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get retrieves a stored value. Returns (nil, false) on miss or read failure.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value under key, replacing any previous value.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), value, 0o600); err != nil {
		return fmt.Errorf("session: write %q: %w", key, err)
	}
	return nil
}

// Delete removes a stored value. Idempotent - no error on miss.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: delete %q: %w", key, err)
	}
	return nil
}

// path maps a key to its file. Keys are hashed so arbitrary key strings
// stay filesystem-safe.
func (s *FileStore) path(key string) string {
	sum := md5.Sum([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:]))
}

// Ensure FileStore implements Storage
var _ Storage = (*FileStore)(nil)
