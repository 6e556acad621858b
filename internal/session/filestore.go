package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// tokenFile is the on-disk shape under the well-known path.
type tokenFile struct {
	AccessToken string    `json:"access_token"`
	SavedAt     time.Time `json:"saved_at"`
}

// FileStore persists the token as JSON in the user config directory.
// This is the only client-side state that survives a restart.
type FileStore struct {
	dir string
}

// NewFileStore places the token under $XDG_CONFIG_HOME/contentforge
// (or ~/.config/contentforge).
func NewFileStore() *FileStore {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return &FileStore{dir: filepath.Join(v, "contentforge")}
	}
	home, _ := os.UserHomeDir()
	return &FileStore{dir: filepath.Join(home, ".config", "contentforge")}
}

func (s *FileStore) path() string { return filepath.Join(s.dir, "token.json") }

// Save writes the token, creating the config dir if needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: token, SavedAt: time.Now()})
}

// Load returns the stored token; a missing file means "" with no error.
func (s *FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	return tf.AccessToken, nil
}

// Clear removes the token file; clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
