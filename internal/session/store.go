// Package session persists the backend session token across runs.
//
// The token is an opaque string the client replays on each call; it is
// treated as valid until the server answers 401. There is no local
// expiry logic.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the session token in a single file under the data
// directory. The zero token ("") means no session. Reads and writes
// replace the value wholesale; there is no partial mutation.
type Store struct {
	path string
}

// NewStore creates a store backed by dataDir/token.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "token")}
}

// Token returns the stored session token, or "" when there is none.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the token, creating the data directory if needed.
// The file is user-only readable.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an already-empty store is
// not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
