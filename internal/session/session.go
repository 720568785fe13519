// Package session persists the operator's E-Garage auth session.
// The session lives in ~/.config/pitview/session.toml and is passed
// explicitly to the API client, so credential attachment is visible at the
// call site instead of read from ambient global state.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Session holds the backend-issued token and the signed-in user identity.
// The token is opaque to pitview; it is attached to requests verbatim.
type Session struct {
	Token  string `toml:"token"`
	UserID string `toml:"user_id"`
	Email  string `toml:"email"`
}

const defaultSessionPath = "~/.config/pitview/session.toml"

// Authenticated reports whether a usable token is present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Load reads the session from the given path. A missing or unreadable file
// yields an empty (unauthenticated) session rather than an error; the
// console still works read-only against endpoints that allow it.
func Load(path string) Session {
	resolved, err := resolvePath(path)
	if err != nil {
		return Session{}
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return Session{}
	}

	var s Session
	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Session{}
	}
	return s
}

// Save writes the session to the given path, creating directories as
// needed. The file is written 0600 since it holds a credential.
func Save(path string, s Session) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file (sign-out). A missing file is not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
