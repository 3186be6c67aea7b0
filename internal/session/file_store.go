package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// FileStore persists the session as two files under a directory, typically
// the user's config dir. Two processes sharing the directory behave like two
// browser tabs sharing localStorage: last writer wins, readers observe the
// change on their next read.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("session dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Token() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *FileStore) SetToken(token string) error {
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

func (s *FileStore) RemoveToken() error {
	return removeIfExists(filepath.Join(s.dir, tokenFile))
}

// User returns the cached profile, or nil when none is stored. Corrupt stored
// data also reads as nil: a broken session means logged out, not a fatal error.
func (s *FileStore) User() *User {
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}

func (s *FileStore) SetUser(u *User) error {
	if u == nil {
		return s.RemoveUser()
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("serializing user: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), raw, 0o600)
}

func (s *FileStore) RemoveUser() error {
	return removeIfExists(filepath.Join(s.dir, userFile))
}

func (s *FileStore) Clear() error {
	return errors.Join(s.RemoveToken(), s.RemoveUser())
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
