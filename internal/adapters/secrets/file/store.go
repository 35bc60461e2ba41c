package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
)

const (
	dirMode   = 0o700
	tokenMode = 0o600
)

// ErrExposedCredential is returned for a credential file other users can read.
var ErrExposedCredential = errors.New("credential file is readable by other users")

// Store keeps one credential per file under root. A key such as
// "sensor-access/rpc-token" maps to root/sensor-access/rpc-token.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the credential atomically so a reader never sees a partial
// token.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create credential directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("stage credential %q: %w", key, err)
	}
	staged := tmp.Name()
	defer func() { _ = os.Remove(staged) }()

	if err := tmp.Chmod(tokenMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("restrict credential %q: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credential %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write credential %q: %w", key, err)
	}

	if err := os.Rename(staged, path); err != nil {
		return fmt.Errorf("store credential %q: %w", key, err)
	}
	return nil
}

// Get returns the credential without trailing line breaks. Files that group
// or other users can read are refused.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("credential %q: %w", key, domain.ErrCredentialNotFound)
	case err != nil:
		return "", fmt.Errorf("stat credential %q: %w", key, err)
	case info.Mode().Perm()&0o077 != 0:
		return "", fmt.Errorf("%w: %s has mode %#o, want %#o", ErrExposedCredential, path, info.Mode().Perm(), tokenMode)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credential %q: %w", key, err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// Delete removes the credential and any directories left empty below root.
// A missing credential is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}

	for dir := filepath.Dir(path); dir != s.root && strings.HasPrefix(dir, s.root); dir = filepath.Dir(dir) {
		// stops at the first directory that still holds other credentials
		if os.Remove(dir) != nil {
			break
		}
	}

	return nil
}

func (s *Store) resolve(key string) (string, error) {
	name := filepath.Clean(strings.TrimSpace(key))
	switch {
	case name == "" || name == ".":
		return "", errors.New("credential key is empty")
	case filepath.IsAbs(name), name == "..", strings.HasPrefix(name, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("credential key %q escapes the credential directory", key)
	}

	return filepath.Join(s.root, name), nil
}
