package session

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorRecord(seq int) domain.SensorRecord {
	return domain.SensorRecord{
		Timestamp: time.Date(2026, 2, 14, 12, 0, seq, 0, time.UTC),
		Payload: map[string]any{
			"timestamp":           "ignored",
			"sensor_id":           "SHT20-PascaPanen-001",
			"location":            "Gudang Fermentasi 1",
			"process_stage":       "Fermentasi",
			"temperature_celsius": json.Number("27.5"),
			"humidity_percent":    json.Number("81.2"),
			"seq":                 json.Number(big.NewInt(int64(seq)).String()),
		},
	}
}

func streamingView(records ...domain.SensorRecord) application.SessionView {
	return application.SessionView{
		SessionID:    "0f5c2a9e-1111-2222-3333-444455556666",
		Phase:        domain.PhaseStreaming,
		Contract:     "0xABC",
		Account:      "0x111",
		Receipt:      &domain.PurchaseReceipt{TxHash: "0xTX1", Confirmed: true, Price: big.NewInt(1000)},
		Grant:        &domain.AccessGrant{TxHash: "0xTX1", Granted: true},
		StreamStatus: domain.StreamConnected,
		Records:      records,
	}
}

func TestRenderConnectedStreamWithoutRecordsWaitsForData(t *testing.T) {
	output, err := Render(streamingView(), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "Sensor Access")
	assert.Contains(t, output, "session: 0f5c2a9e")
	assert.Contains(t, output, "phase: Streaming live data")
	assert.Contains(t, output, "contract: 0xABC")
	assert.Contains(t, output, "account: 0x111")
	assert.Contains(t, output, "receipt: 0xTX1 (1000 wei) confirmed")
	assert.Contains(t, output, "access: granted")
	assert.Contains(t, output, "live data (connected, 0 records)")
	assert.Contains(t, output, "Waiting for first data...")
}

func TestRenderRecordsNewestFirstWithSensorColumns(t *testing.T) {
	output, err := Render(streamingView(sensorRecord(3), sensorRecord(2), sensorRecord(1)), RenderOptions{MaxRecords: 2})
	require.NoError(t, err)

	assert.Contains(t, output, "live data (connected, 3 records)")
	assert.Contains(t, output, "2026-02-14 12:00:03  SHT20-PascaPanen-001  Gudang Fermentasi 1  Fermentasi  27.5°C  81.2%  seq=3")
	assert.Contains(t, output, "2026-02-14 12:00:02")
	assert.NotContains(t, output, "2026-02-14 12:00:01")
	assert.Less(t, strings.Index(output, "12:00:03"), strings.Index(output, "12:00:02"))
	assert.NotContains(t, output, "Waiting for first data")
}

func TestRenderGenericPayloadAsKeyValues(t *testing.T) {
	record := domain.SensorRecord{
		Timestamp: time.Unix(0, 0).UTC(),
		Payload:   map[string]any{"timestamp": json.Number("0"), "b": "two", "a": json.Number("1")},
	}

	output, err := Render(streamingView(record), RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "1970-01-01 00:00:00  a=1 b=two")
}

func TestRenderDeniedSessionShowsError(t *testing.T) {
	output, err := Render(application.SessionView{
		SessionID:    "abc",
		Phase:        domain.PhaseDenied,
		Account:      "0x111",
		StreamStatus: domain.StreamIdle,
		LastError:    &domain.SessionError{Kind: domain.ErrorKindDenied, Message: "access denied: tx not found"},
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "phase: Access denied")
	assert.Contains(t, output, "access: denied")
	assert.Contains(t, output, "error [denied]: access denied: tx not found")
	assert.NotContains(t, output, "live data")
}

func TestRenderUnverifiedReceiptOffersRetry(t *testing.T) {
	output, err := Render(application.SessionView{
		Phase:                domain.PhaseWalletConnected,
		Receipt:              &domain.PurchaseReceipt{TxHash: "0xTX1", Confirmed: true},
		CanRetryVerification: true,
		LastError:            &domain.SessionError{Kind: domain.ErrorKindVerificationUnreachable, Message: "verification endpoint unreachable"},
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "session: n/a")
	assert.Contains(t, output, "access: unverified, retry available")
	assert.Contains(t, output, "error [verification_unreachable]")
}

func TestRenderHistory(t *testing.T) {
	purchasedAt := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	output, err := RenderHistory([]domain.PurchaseRecord{
		{
			TxHash:      "0xTX2",
			Account:     "0x111",
			Contract:    "0xABC",
			Price:       big.NewInt(1000),
			Status:      domain.PurchaseStatusDenied,
			Reason:      "tx not found",
			PurchasedAt: purchasedAt,
			VerifiedAt:  purchasedAt.Add(time.Minute),
		},
		{TxHash: "0xTX1", Status: domain.PurchaseStatusUnverified},
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "purchases: 2")
	assert.Contains(t, output, "0xTX2 [denied]")
	assert.Contains(t, output, "price: 1000 wei")
	assert.Contains(t, output, "purchased: 2026-02-14 12:00:00")
	assert.Contains(t, output, "verified: 2026-02-14 12:01:00")
	assert.Contains(t, output, "reason: tx not found")
	assert.Contains(t, output, "0xTX1 [unverified]")
}

func TestRenderEmptyHistory(t *testing.T) {
	output, err := RenderHistory(nil, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "No purchases recorded.")
}

func TestPhaseLabel(t *testing.T) {
	assert.Equal(t, "Verifying access...", PhaseLabel(domain.PhaseVerifying))
	assert.Equal(t, "mystery", PhaseLabel(domain.Phase("mystery")))
}
