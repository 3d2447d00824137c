package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/darkai/darkchat/internal/config"
	pErrors "github.com/darkai/darkchat/internal/errors"
)

// SessionFileName is the auth state file inside the darkchat directory
const SessionFileName = "session.json"

// State is what survives between runs. A zero State is anonymous.
type State struct {
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	Token      string    `json:"token,omitempty"`
	SignedInAt time.Time `json:"signed_in_at,omitzero"`
}

// SignedIn reports whether a display name is present
func (s State) SignedIn() bool {
	return s.Username != ""
}

// Store persists State as JSON. Writes go to a temp file that is renamed
// into place, so a reader never sees a partial file.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the store under the darkchat directory
func DefaultStore() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, pErrors.SessionLoadFailed(SessionFileName, err)
	}
	return NewStore(filepath.Join(dir, SessionFileName)), nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved state. A missing file is the anonymous state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, pErrors.SessionLoadFailed(s.path, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, pErrors.SessionLoadFailed(s.path, err)
	}
	return st, nil
}

// Save replaces the saved state
func (s *Store) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return pErrors.SessionSaveFailed(s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return pErrors.SessionSaveFailed(s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return pErrors.SessionSaveFailed(s.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return pErrors.SessionSaveFailed(s.path, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return pErrors.SessionSaveFailed(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return pErrors.SessionSaveFailed(s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return pErrors.SessionSaveFailed(s.path, err)
	}
	return nil
}

// Clear removes the saved state
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return pErrors.SessionSaveFailed(s.path, err)
	}
	return nil
}
