package ports

import (
	"context"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

// WalletProvider grants account access and exposes a signer for an account.
//
// RequestAccounts returns domain.ErrProviderUnavailable when no provider can
// be reached and domain.ErrUserRejected when the request is declined.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]domain.Address, error)
	Signer(account domain.Address) domain.TxSigner
}
