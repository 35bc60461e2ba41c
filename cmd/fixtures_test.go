package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testDescriptor = `{
  "address": "0xABC",
  "abi": [
    {"type":"function","name":"accessPrice","inputs":[],"outputs":[{"type":"uint256"}],"stateMutability":"view"},
    {"type":"function","name":"purchaseAccess","inputs":[],"outputs":[],"stateMutability":"payable"}
  ]
}`

// backend fakes the node, the verification endpoint and the stream for one
// test run.
type backend struct {
	t *testing.T

	mu         sync.Mutex
	rpcMethods []string
	verified   []string

	// verdicts maps tx hash to HTTP status and message; unknown hashes get 401.
	verdicts map[string]verdict
	txHash   string
	records  int
	dials    atomic.Int32
}

type verdict struct {
	status  int
	message string
}

func newBackend(t *testing.T, txHash string, records int) *backend {
	t.Helper()

	b := &backend{
		t:        t,
		txHash:   txHash,
		records:  records,
		verdicts: map[string]verdict{},
	}

	rpc := httptest.NewServer(http.HandlerFunc(b.serveRPC))
	t.Cleanup(rpc.Close)

	api := httptest.NewServer(http.HandlerFunc(b.serveVerify))
	t.Cleanup(api.Close)

	stream := httptest.NewServer(http.HandlerFunc(b.serveStream))
	t.Cleanup(stream.Close)

	descriptorPath := filepath.Join(t.TempDir(), "deployedAddress.json")
	require.NoError(t, os.WriteFile(descriptorPath, []byte(testDescriptor), 0o600))

	t.Setenv("SA_DESCRIPTOR_SOURCE", descriptorPath)
	t.Setenv("SA_LEDGER_RPC_URL", rpc.URL)
	t.Setenv("SA_LEDGER_POLL_INTERVAL", "10ms")
	t.Setenv("SA_VERIFY_BASE_URL", api.URL)
	t.Setenv("SA_STREAM_URL", "ws"+strings.TrimPrefix(stream.URL, "http")+"/ws")

	return b
}

func (b *backend) grant(hash string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verdicts[hash] = verdict{status: http.StatusOK, message: "access granted"}
}

func (b *backend) serveRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(b.t, err)
	request := gjson.ParseBytes(body)
	method := request.Get("method").String()

	b.mu.Lock()
	b.rpcMethods = append(b.rpcMethods, method)
	b.mu.Unlock()

	var result any
	switch method {
	case "eth_requestAccounts", "eth_accounts":
		result = []string{"0x111"}
	case "eth_call":
		result = fmt.Sprintf("0x%064x", 1000)
	case "eth_sendTransaction":
		result = b.txHash
	case "eth_getTransactionReceipt":
		result = map[string]any{
			"transactionHash": b.txHash,
			"to":              "0xABC",
			"blockNumber":     "0x10",
			"status":          "0x1",
		}
	default:
		writeJSON(b.t, w, map[string]any{
			"jsonrpc": "2.0",
			"id":      json.RawMessage(request.Get("id").Raw),
			"error":   map[string]any{"code": -32601, "message": "method not found"},
		})
		return
	}

	writeJSON(b.t, w, map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(request.Get("id").Raw), "result": result})
}

func (b *backend) serveVerify(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("tx_hash")

	b.mu.Lock()
	b.verified = append(b.verified, hash)
	v, ok := b.verdicts[hash]
	b.mu.Unlock()

	if !ok {
		v = verdict{status: http.StatusUnauthorized, message: "tx not found"}
	}
	w.WriteHeader(v.status)
	writeJSON(b.t, w, map[string]string{"message": v.message})
}

func (b *backend) serveStream(w http.ResponseWriter, r *http.Request) {
	b.dials.Add(1)

	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= b.records; i++ {
		payload := fmt.Sprintf(`{"timestamp":%q,"sensor_id":"SHT20-%02d","location":"Gudang Fermentasi 1","process_stage":"Fermentasi","temperature_celsius":27.5,"humidity_percent":81.2}`,
			base.Add(time.Duration(i)*time.Second).Format(time.RFC3339), i)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			return
		}
	}

	// hold the connection until the client closes it
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *backend) verifiedHashes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.verified...)
}

func writeJSON(t *testing.T, w io.Writer, value any) {
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(value))
	_, _ = w.Write(buf.Bytes())
}
