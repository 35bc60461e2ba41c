package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
)

// ErrUnavailable means the pass binary is not installed.
var ErrUnavailable = errors.New("pass command unavailable")

const (
	defaultBinary = "pass"
	missingEntry  = "is not in the password store"
)

type invocation struct {
	args  []string
	stdin string
}

type runner func(ctx context.Context, inv invocation) (stdout string, stderr string, err error)

// Store keeps credentials as pass entries. The secret is the first line of
// the entry.
type Store struct {
	binary   string
	storeDir string
	run      runner
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithStoreDir points pass at a password store other than its default.
func WithStoreDir(dir string) Option {
	return func(s *Store) {
		s.storeDir = dir
	}
}

func WithBinary(path string) Option {
	return func(s *Store) {
		s.binary = path
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{binary: defaultBinary}
	for _, opt := range opts {
		opt(s)
	}
	s.run = s.exec
	return s
}

// Put overwrites the entry. Values spanning several lines are refused since
// only the first line is read back.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass entry %q: credential must be a single line", key)
	}

	_, stderr, err := s.run(ctx, invocation{
		args:  []string{"insert", "--multiline", "--force", key},
		stdin: value + "\n",
	})
	return passError("insert", key, err, stderr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, invocation{args: []string{"show", key}})
	if err != nil {
		return "", passError("show", key, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

// Delete removes the entry; an entry that does not exist counts as removed.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, invocation{args: []string{"rm", "--force", key}})
	if err != nil && strings.Contains(stderr, missingEntry) {
		return nil
	}
	return passError("rm", key, err, stderr)
}

func (s *Store) exec(ctx context.Context, inv invocation) (string, string, error) {
	path, err := exec.LookPath(s.binary)
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate %s: %w", s.binary, err)
	}

	cmd := exec.CommandContext(ctx, path, inv.args...)
	if inv.stdin != "" {
		cmd.Stdin = strings.NewReader(inv.stdin)
	}
	if s.storeDir != "" {
		cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+s.storeDir)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func passError(verb string, key string, err error, stderr string) error {
	switch {
	case err == nil:
		return nil
	case strings.Contains(stderr, missingEntry):
		return fmt.Errorf("pass %s %q: %w", verb, key, domain.ErrCredentialNotFound)
	case stderr != "":
		return fmt.Errorf("pass %s %q: %w (%s)", verb, key, err, stderr)
	default:
		return fmt.Errorf("pass %s %q: %w", verb, key, err)
	}
}
