package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// WalletSession owns the connected wallet identity.
type WalletSession struct {
	provider ports.WalletProvider
	log      *logrus.Entry

	mu       sync.Mutex
	identity domain.WalletIdentity
}

func NewWalletSession(provider ports.WalletProvider, log *logrus.Entry) *WalletSession {
	return &WalletSession{provider: provider, log: logging.Component(log, "wallet")}
}

// Connect requests account access from the provider. When already connected
// it returns the current identity without another provider round-trip.
func (w *WalletSession) Connect(ctx context.Context, descriptor domain.ContractDescriptor) (domain.WalletIdentity, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.identity.Connected() {
		return w.identity, nil
	}
	if w.provider == nil {
		return domain.WalletIdentity{}, domain.ErrProviderUnavailable
	}

	accounts, err := w.provider.RequestAccounts(ctx)
	if err != nil {
		w.identity = domain.WalletIdentity{}
		switch {
		case errors.Is(err, domain.ErrUserRejected), errors.Is(err, domain.ErrProviderUnavailable):
			return domain.WalletIdentity{}, err
		default:
			return domain.WalletIdentity{}, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
		}
	}
	if len(accounts) == 0 || accounts[0] == "" {
		return domain.WalletIdentity{}, fmt.Errorf("%w: no account authorized", domain.ErrUserRejected)
	}

	signer := w.provider.Signer(accounts[0])
	if signer == nil {
		return domain.WalletIdentity{}, fmt.Errorf("%w: provider has no signer for %s", domain.ErrProviderUnavailable, accounts[0])
	}

	w.identity = domain.WalletIdentity{Account: accounts[0], Signer: signer}
	w.log.WithFields(logrus.Fields{
		"account":  accounts[0],
		"contract": descriptor.Address,
	}).Info("wallet connected")

	return w.identity, nil
}

func (w *WalletSession) Identity() (domain.WalletIdentity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.identity, w.identity.Connected()
}

// Disconnect invalidates the identity; the next Connect asks the provider again.
func (w *WalletSession) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.identity = domain.WalletIdentity{}
}
