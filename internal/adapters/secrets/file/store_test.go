package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "sensor-access/rpc-token", "top-secret"))

	value, err := store.Get(context.Background(), "sensor-access/rpc-token")
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)

	info, err := os.Stat(filepath.Join(root, "sensor-access", "rpc-token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete(context.Background(), "sensor-access/rpc-token"))
	require.NoError(t, store.Delete(context.Background(), "sensor-access/rpc-token"))

	_, err = store.Get(context.Background(), "sensor-access/rpc-token")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreTrimsHandWrittenNewline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "rpc-token"), []byte("abc123\n"), 0o600))

	value, err := NewStore(root).Get(context.Background(), "rpc-token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestStoreRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	for _, key := range []string{"", "  ", "../outside", "/etc/passwd", "."} {
		_, err := store.Get(context.Background(), key)
		require.Error(t, err, key)
	}
}

func TestStoreRefusesExposedCredential(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "rpc-token")
	require.NoError(t, os.WriteFile(path, []byte("abc123"), 0o600))
	require.NoError(t, os.Chmod(path, 0o644))

	_, err := NewStore(root).Get(context.Background(), "rpc-token")
	require.ErrorIs(t, err, ErrExposedCredential)
	assert.Contains(t, err.Error(), "has mode 0644")
}

func TestStorePutLeavesNoStagedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "sensor-access/rpc-token", "first"))
	require.NoError(t, store.Put(context.Background(), "sensor-access/rpc-token", "second"))

	entries, err := os.ReadDir(filepath.Join(root, "sensor-access"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rpc-token", entries[0].Name())

	value, err := store.Get(context.Background(), "sensor-access/rpc-token")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestStoreDeletePrunesEmptyDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sensor-access/rpc-token", "a"))
	require.NoError(t, store.Put(ctx, "sensor-access/verify-token", "b"))

	require.NoError(t, store.Delete(ctx, "sensor-access/rpc-token"))
	assert.DirExists(t, filepath.Join(root, "sensor-access"))

	require.NoError(t, store.Delete(ctx, "sensor-access/verify-token"))
	assert.NoDirExists(t, filepath.Join(root, "sensor-access"))
	assert.DirExists(t, root)
}
