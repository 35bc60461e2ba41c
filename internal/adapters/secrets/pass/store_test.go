package pass

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenKey = "sensor-access/rpc-token"

func storeWith(fn runner) *Store {
	s := NewStore()
	s.run = fn
	return s
}

func TestStorePutInsertsSingleLineEntry(t *testing.T) {
	t.Parallel()

	var got invocation
	store := storeWith(func(_ context.Context, inv invocation) (string, string, error) {
		got = inv
		return "", "", nil
	})

	require.NoError(t, store.Put(context.Background(), tokenKey, "top-secret"))
	assert.Equal(t, []string{"insert", "--multiline", "--force", tokenKey}, got.args)
	assert.Equal(t, "top-secret\n", got.stdin)
}

func TestStorePutRejectsMultilineValues(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, invocation) (string, string, error) {
		t.Fatal("pass must not run")
		return "", "", nil
	})

	err := store.Put(context.Background(), tokenKey, "line one\nline two")
	require.EqualError(t, err, `pass entry "sensor-access/rpc-token": credential must be a single line`)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := storeWith(func(_ context.Context, inv invocation) (string, string, error) {
		assert.Equal(t, []string{"show", tokenKey}, inv.args)
		assert.Empty(t, inv.stdin)
		return "top-secret\r\nurl: http://127.0.0.1:8545\n", "", nil
	})

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreMissingEntry(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, invocation) (string, string, error) {
		return "", "Error: sensor-access/rpc-token is not in the password store.", errors.New("exit status 1")
	})

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreKeepsStderrInErrors(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, invocation) (string, string, error) {
		return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
	})

	_, err := store.Get(context.Background(), tokenKey)
	require.EqualError(t, err, `pass show "sensor-access/rpc-token": exit status 2 (gpg: decryption failed: No secret key)`)
}

func TestStoreReportsMissingBinary(t *testing.T) {
	t.Parallel()

	store := NewStore(WithBinary(filepath.Join(t.TempDir(), "no-such-pass")))

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, store.Delete(context.Background(), tokenKey), ErrUnavailable)
}

func TestStorePassesStoreDirToPass(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "pass")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$PASSWORD_STORE_DIR\"\n"), 0o700))

	value, err := NewStore(WithBinary(script), WithStoreDir("/srv/team-store")).Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "/srv/team-store", value)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, invocation) (string, string, error) {
		t.Fatal("pass must not run")
		return "", "", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
}
