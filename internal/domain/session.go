package domain

// Phase is the orchestrator's position in the access lifecycle.
type Phase string

const (
	PhaseUnconfigured     Phase = "unconfigured"
	PhaseReady            Phase = "ready"
	PhaseWalletConnecting Phase = "wallet_connecting"
	PhaseWalletConnected  Phase = "wallet_connected"
	PhasePurchasing       Phase = "purchasing"
	PhaseVerifying        Phase = "verifying"
	PhaseStreaming        Phase = "streaming"
	PhaseDenied           Phase = "denied"
	PhaseFailed           Phase = "failed"
)

// StreamStatus is the state of the live data connection.
type StreamStatus string

const (
	StreamIdle       StreamStatus = "idle"
	StreamConnecting StreamStatus = "connecting"
	StreamConnected  StreamStatus = "connected"
	StreamError      StreamStatus = "error"
	StreamClosed     StreamStatus = "closed"
)

func (s StreamStatus) Terminal() bool {
	return s == StreamError || s == StreamClosed
}
