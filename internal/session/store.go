package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store persists the session between runs, the way the browser frontend keeps
// the account id and the caller's LLM key in local storage.
type Store interface {
	Load() (Persisted, error)
	Save(Persisted) error
	Clear() error
}

// Persisted is the on-disk session state.
type Persisted struct {
	AccountID    string `yaml:"account_id"`
	OpenAIAPIKey string `yaml:"openai_api_key,omitempty"`
}

// FileStore keeps the session in a YAML file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath is ~/.config/reachout/session.yaml, overridable with
// REACHOUT_SESSION.
func DefaultSessionPath() string {
	if p := os.Getenv("REACHOUT_SESSION"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.yaml"
	}
	return filepath.Join(home, ".config", "reachout", "session.yaml")
}

func (s *FileStore) Load() (Persisted, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Persisted{}, nil
	}
	if err != nil {
		return Persisted{}, err
	}
	var p Persisted
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Persisted{}, err
	}
	return p, nil
}

func (s *FileStore) Save(p Persisted) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ValidAPIKeyShape is the client-side heuristic for an OpenAI-style key. It
// only catches obvious paste mistakes; the server never validates the key.
func ValidAPIKeyShape(key string) bool {
	key = strings.TrimSpace(key)
	return strings.HasPrefix(key, "sk-") && len(key) > 20
}
