// Package session persists the authenticated session across runs. One JSON
// file holds a single AuthData record; the zero state (no file) means
// unauthenticated.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"airclient/internal/domain"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(data domain.AuthData) error {
	if data.Token == "" || data.Email == "" {
		return errors.New("auth data requires token and email")
	}
	// A stored token must look like a JWT; anything else would poison
	// every later request's Authorization header.
	if strings.Count(data.Token, ".") != 2 {
		return errors.New("token is not a well-formed three-part token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when none exists. A corrupt or
// incomplete entry is cleared and treated as unauthenticated.
func (s *Store) Load() (*domain.AuthData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var data domain.AuthData
	if err := json.Unmarshal(payload, &data); err != nil {
		_ = os.Remove(s.path)
		return nil, nil
	}
	if data.Token == "" || data.Email == "" {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return &data, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) IsAuthenticated() bool {
	data, err := s.Load()
	return err == nil && data != nil
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	data, err := s.Load()
	if err != nil || data == nil {
		return ""
	}
	return data.Token
}
