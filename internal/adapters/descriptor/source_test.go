package descriptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifact = `{"address":"0xABC","abi":[{"type":"function","name":"accessPrice","inputs":[]}]}`

func TestFileSourceReadsArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployedAddress.json")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o600))

	data, err := FileSource{Path: path}.FetchDescriptor(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, artifact, string(data))
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.FetchDescriptor(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = FileSource{}.FetchDescriptor(context.Background())
	require.EqualError(t, err, "descriptor path is required")
}

func TestHTTPSourceFetchesArtifact(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deployedAddress.json", r.URL.Path)
		_, _ = w.Write([]byte(artifact))
	}))
	t.Cleanup(server.Close)

	data, err := HTTPSource{URL: server.URL + "/deployedAddress.json"}.FetchDescriptor(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, artifact, string(data))
}

func TestHTTPSourceNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	_, err := HTTPSource{URL: server.URL + "/deployedAddress.json"}.FetchDescriptor(context.Background())
	require.EqualError(t, err, "fetch descriptor: status 404")
}

func TestNewSourcePicksByLocation(t *testing.T) {
	assert.IsType(t, HTTPSource{}, NewSource("http://localhost:3000/deployedAddress.json", 0))
	assert.IsType(t, HTTPSource{}, NewSource("HTTPS://example.com/a.json", 0))
	assert.IsType(t, FileSource{}, NewSource("deployedAddress.json", 0))
	assert.IsType(t, FileSource{}, NewSource("/srv/app/deployedAddress.json", 0))
}
