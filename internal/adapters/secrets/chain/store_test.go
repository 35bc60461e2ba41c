package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	passstore "github.com/bnema/sensor-access-cli/internal/adapters/secrets/pass"
	"github.com/bnema/sensor-access-cli/internal/domain"
	portmocks "github.com/bnema/sensor-access-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenKey = "sensor-access/rpc-token"

func newTestStore(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback, nil)
	require.NoError(t, err)

	return store, primary, fallback
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t), nil)
	require.EqualError(t, err, "primary credential store is nil")

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil, nil)
	require.EqualError(t, err, "fallback credential store is nil")
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenNeitherBackendHasKey(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("pass: %w", domain.ErrCredentialNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", fmt.Errorf("file: %w", domain.ErrCredentialNotFound)).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
	assert.Equal(t, `credential "sensor-access/rpc-token": credential not found`, err.Error())
}

func TestStoreGetCombinesUnrelatedFailures(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primaryErr := errors.New("pass unavailable")
	fallbackErr := errors.New("disk unavailable")
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", primaryErr).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", fallbackErr).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, primaryErr)
	require.ErrorIs(t, err, fallbackErr)
}

func TestStoreSkipsFallbackOnContextErrors(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", context.Canceled).Once()
	primary.EXPECT().Put(mock.Anything, tokenKey, "v").Return(context.DeadlineExceeded).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Put(context.Background(), tokenKey, "v"), context.DeadlineExceeded)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Put(mock.Anything, tokenKey, "secret").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, tokenKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "secret"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestStore(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteToleratesMissingPrimary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		primaryErr error
	}{
		{name: "pass not installed", primaryErr: fmt.Errorf("pass rm %q: %w", tokenKey, passstore.ErrUnavailable)},
		{name: "not in pass", primaryErr: fmt.Errorf("pass rm %q: %w", tokenKey, domain.ErrCredentialNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, primary, fallback := newTestStore(t)
			primary.EXPECT().Delete(mock.Anything, tokenKey).Return(tt.primaryErr).Once()
			fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

			require.NoError(t, store.Delete(context.Background(), tokenKey))
		})
	}
}

func TestStoreDeleteReportsFailures(t *testing.T) {
	t.Parallel()

	t.Run("pass error with fallback success", func(t *testing.T) {
		store, primary, fallback := newTestStore(t)
		primary.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("gpg: decryption failed")).Once()
		fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

		require.EqualError(t, store.Delete(context.Background(), tokenKey), "gpg: decryption failed")
	})

	t.Run("both backends fail", func(t *testing.T) {
		store, primary, fallback := newTestStore(t)
		primary.EXPECT().Delete(mock.Anything, tokenKey).Return(passstore.ErrUnavailable).Once()
		fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("permission denied")).Once()

		err := store.Delete(context.Background(), tokenKey)
		require.ErrorIs(t, err, passstore.ErrUnavailable)
		assert.ErrorContains(t, err, "fallback delete failed: permission denied")
	})

	t.Run("fallback fails after pass delete", func(t *testing.T) {
		store, primary, fallback := newTestStore(t)
		primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
		fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("permission denied")).Once()

		require.EqualError(t, store.Delete(context.Background(), tokenKey), "permission denied")
	})
}

func TestResolveToken(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestStore(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return(" abc123 ", nil).Once()

	token, err := ResolveToken(context.Background(), store, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ResolveToken(context.Background(), store, "  ")
	require.NoError(t, err)
	assert.Empty(t, token)
}
