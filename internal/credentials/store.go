// Package credentials persists the saved username and password in a small
// versioned TOML file.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/portal-keepalive/internal/logging/events"
	"github.com/gofrs/flock"
)

// SchemaVersion is written to every file. A file carrying any other version
// is considered stale and its contents are discarded.
const SchemaVersion = 1

const (
	fileName = ".portal-keepalive.toml"
	fileMode = 0o600
)

// Credentials are the saved login values.
type Credentials struct {
	Username string
	Password string
}

// Complete reports whether both values are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

type document struct {
	Version  int    `toml:"version"`
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
}

// Store reads and writes one credentials file.
type Store struct {
	path string
}

// DefaultPath returns the credentials file in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved credentials. A missing file is created holding only
// the version. stale is true when the file had another version or could not
// be decoded; it is then rewritten and empty credentials are returned.
func (s *Store) Load() (creds Credentials, stale bool, err error) {
	err = s.withLock(func() error {
		data, rerr := os.ReadFile(s.path)
		if errors.Is(rerr, fs.ErrNotExist) {
			return s.write(document{Version: SchemaVersion})
		}
		if rerr != nil {
			return fmt.Errorf("read credentials: %w", rerr)
		}
		var doc document
		if _, derr := toml.Decode(string(data), &doc); derr != nil || doc.Version != SchemaVersion {
			stale = true
			return s.write(document{Version: SchemaVersion})
		}
		creds = Credentials{Username: doc.Username, Password: doc.Password}
		return nil
	})
	if err != nil {
		return Credentials{}, stale, err
	}
	events.Credentials.Load(s.path, creds.Complete(), stale)
	return creds, stale, nil
}

// Save replaces the stored credentials.
func (s *Store) Save(creds Credentials) error {
	err := s.withLock(func() error {
		return s.write(document{Version: SchemaVersion, Username: creds.Username, Password: creds.Password})
	})
	if err == nil {
		events.Credentials.Save(s.path, creds.Username)
	}
	return err
}

// Forget clears the stored credentials, keeping the version marker.
func (s *Store) Forget() error {
	err := s.withLock(func() error {
		return s.write(document{Version: SchemaVersion})
	})
	if err == nil {
		events.Credentials.Forget(s.path)
	}
	return err
}

func (s *Store) withLock(fn func() error) error {
	if s.path == "" {
		return errors.New("credentials path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock credentials: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

func (s *Store) write(doc document) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes(), fileMode); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
