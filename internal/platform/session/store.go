package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenPair holds the two bearer credentials issued by the Karpos backend.
// The access token authenticates API calls; the refresh token mints new
// pairs without re-authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no credentials are present.
func (p TokenPair) Empty() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// Store persists the current token pair. Writes are last-writer-wins; the
// store holds nothing but the two opaque strings, so no transactional
// semantics are needed.
type Store interface {
	Save(access, refresh string) error
	Get() (TokenPair, error)
	Clear() error
}

// FileStore keeps the token pair in a JSON file with owner-only permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save overwrites both values. The file is written whole, so a reader never
// observes a half-updated pair.
func (s *FileStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.Marshal(TokenPair{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return fmt.Errorf("marshal token pair: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Get returns the current pair, or an empty pair if nothing was ever saved.
func (s *FileStore) Get() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return TokenPair{}, nil
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("read token file: %w", err)
	}
	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("parse token file: %w", err)
	}
	return pair, nil
}

// Clear deletes both values. Clearing an already-empty store is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store used by tests and the mock server.
type MemStore struct {
	mu   sync.Mutex
	pair TokenPair
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{AccessToken: access, RefreshToken: refresh}
	return nil
}

func (s *MemStore) Get() (TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair, nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	return nil
}
