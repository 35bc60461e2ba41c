package session

import "github.com/bnema/sensor-access-cli/internal/domain"

var phaseLabels = map[domain.Phase]string{
	domain.PhaseUnconfigured:     "Loading contract configuration...",
	domain.PhaseReady:            "Ready to connect wallet",
	domain.PhaseWalletConnecting: "Connecting wallet...",
	domain.PhaseWalletConnected:  "Wallet connected",
	domain.PhasePurchasing:       "Waiting for purchase confirmation...",
	domain.PhaseVerifying:        "Verifying access...",
	domain.PhaseStreaming:        "Streaming live data",
	domain.PhaseDenied:           "Access denied",
	domain.PhaseFailed:           "Contract configuration unavailable",
}

// PhaseLabel is the one-line progress text shown for a phase.
func PhaseLabel(phase domain.Phase) string {
	if label, ok := phaseLabels[phase]; ok {
		return label
	}
	return string(phase)
}
