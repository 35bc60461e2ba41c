package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAccessGranted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/verify-access", r.URL.Path)
		assert.Equal(t, "0xTX1", r.URL.Query().Get("tx_hash"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Verifikasi berhasil. Silakan hubungkan WebSocket."}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}
	grant, err := client.VerifyAccess(context.Background(), "0xTX1")
	require.NoError(t, err)
	assert.True(t, grant.Granted)
	assert.Equal(t, domain.TxHash("0xTX1"), grant.TxHash)
}

func TestVerifyAccessDeniedCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{name: "not found", status: http.StatusUnauthorized, body: `{"message":"tx not found"}`, reason: "tx not found"},
		{name: "bad hash", status: http.StatusBadRequest, body: `{"message":"Format tx_hash tidak valid."}`, reason: "Format tx_hash tidak valid."},
		{name: "no body", status: http.StatusForbidden, body: ``, reason: "status 403"},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, reason: "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			grant, err := Client{BaseURL: server.URL}.VerifyAccess(context.Background(), "0xTX2")
			require.NoError(t, err)
			assert.False(t, grant.Granted)
			assert.Equal(t, tt.reason, grant.Reason)
		})
	}
}

func TestVerifyAccessUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := Client{BaseURL: baseURL}.VerifyAccess(context.Background(), "0xTX1")
	require.ErrorIs(t, err, domain.ErrVerificationUnreachable)
}

func TestVerifyAccessTimesOut(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client := Client{BaseURL: server.URL, RequestTimeout: 50 * time.Millisecond}
	_, err := client.VerifyAccess(context.Background(), "0xTX1")
	require.ErrorIs(t, err, domain.ErrVerificationUnreachable)
}

func TestBuildVerifyURLValidatesBase(t *testing.T) {
	t.Parallel()

	_, err := buildVerifyURL("", "0x1")
	require.EqualError(t, err, "verification base url is required")
	_, err = buildVerifyURL("ftp://host", "0x1")
	require.EqualError(t, err, "verification base url must use http or https")

	endpoint, err := buildVerifyURL("http://localhost:8000/", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/verify-access?tx_hash=0xabc", endpoint)
}
