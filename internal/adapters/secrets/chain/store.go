package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	filestore "github.com/bnema/sensor-access-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/sensor-access-cli/internal/adapters/secrets/pass"
	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Store reads from primary first and falls back to the second backend.
// Writes land in the first backend that accepts them; deletes clear both.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      *logrus.Entry
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, log *logrus.Entry) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if log == nil {
		log = logging.Discard()
	}

	return &Store{primary: primary, fallback: fallback, log: log}, nil
}

func NewPassFirstWithFileFallback(fileRoot string, log *logrus.Entry) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), log)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}
	s.log.WithError(err).WithField("key", key).Debug("primary credential store rejected put, using fallback")

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary put failed: %w; fallback put failed: %w", err, fallbackErr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}
	s.log.WithError(err).WithField("key", key).Debug("primary credential store missed, using fallback")

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, domain.ErrCredentialNotFound) && errors.Is(fallbackErr, domain.ErrCredentialNotFound) {
		return "", fmt.Errorf("credential %q: %w", key, domain.ErrCredentialNotFound)
	}

	return "", fmt.Errorf("primary get failed: %w; fallback get failed: %w", err, fallbackErr)
}

// Delete removes key from both backends so a stale copy cannot shadow a
// later write. A primary that is missing or never held the key does not
// fail the delete once the fallback copy is gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case err == nil:
		return fallbackErr
	case fallbackErr != nil:
		return fmt.Errorf("primary delete failed: %w; fallback delete failed: %w", err, fallbackErr)
	case primaryAbsent(err):
		s.log.WithError(err).WithField("key", key).Debug("primary credential store had nothing to delete")
		return nil
	default:
		return err
	}
}

// ResolveToken reads the credential named by ref. An empty ref means no
// credential is configured.
func ResolveToken(ctx context.Context, store ports.SecretStore, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || store == nil {
		return "", nil
	}

	token, err := store.Get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolve token %q: %w", ref, err)
	}

	return strings.TrimSpace(token), nil
}

func primaryAbsent(err error) bool {
	return errors.Is(err, passstore.ErrUnavailable) || errors.Is(err, domain.ErrCredentialNotFound)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
