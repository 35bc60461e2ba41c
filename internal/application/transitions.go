package application

import (
	"fmt"
	"slices"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

// sessionTransitions lists, per phase, the phases the orchestrator may move
// to next. A phase with no entry is final.
var sessionTransitions = map[domain.Phase][]domain.Phase{
	domain.PhaseUnconfigured: {domain.PhaseReady, domain.PhaseFailed},
	domain.PhaseReady:        {domain.PhaseWalletConnecting},
	domain.PhaseWalletConnecting: {
		domain.PhaseWalletConnected,
		domain.PhaseReady,
	},
	domain.PhaseWalletConnected: {
		domain.PhasePurchasing,
		domain.PhaseVerifying,
	},
	domain.PhasePurchasing: {
		domain.PhaseVerifying,
		domain.PhaseWalletConnected,
	},
	domain.PhaseVerifying: {
		domain.PhaseStreaming,
		domain.PhaseDenied,
		domain.PhaseWalletConnected,
	},
	domain.PhaseStreaming: {
		domain.PhasePurchasing,
		domain.PhaseWalletConnected,
	},
	domain.PhaseDenied: {
		domain.PhasePurchasing,
		domain.PhaseWalletConnected,
	},
	domain.PhaseFailed: nil,
}

func canTransition(from, to domain.Phase) bool {
	return slices.Contains(sessionTransitions[from], to)
}

func checkTransition(from, to domain.Phase) error {
	if !canTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}
