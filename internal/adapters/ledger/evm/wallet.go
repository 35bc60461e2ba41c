package evm

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

// WalletProvider exposes the node's managed accounts.
type WalletProvider struct {
	client *Client
}

func NewWalletProvider(client *Client) *WalletProvider {
	return &WalletProvider{client: client}
}

// RequestAccounts asks for account access, falling back to eth_accounts on
// nodes without eth_requestAccounts.
func (w *WalletProvider) RequestAccounts(ctx context.Context) ([]domain.Address, error) {
	if w.client == nil {
		return nil, domain.ErrProviderUnavailable
	}

	accounts, err := w.client.requestAccounts(ctx)
	if err != nil {
		return nil, classifyWalletError(err)
	}

	addresses := make([]domain.Address, 0, len(accounts))
	for _, account := range accounts {
		addresses = append(addresses, domain.Address(account))
	}
	return addresses, nil
}

func (w *WalletProvider) Signer(account domain.Address) domain.TxSigner {
	if w.client == nil || account == "" {
		return nil
	}
	return &Signer{client: w.client, account: account}
}

// Signer submits transactions for a node-managed account.
type Signer struct {
	client  *Client
	account domain.Address
}

func (s *Signer) SendTransaction(ctx context.Context, tx domain.TxRequest) (domain.TxHash, error) {
	if tx.From != "" && tx.From != s.account {
		return "", fmt.Errorf("signer for %s cannot send from %s", s.account, tx.From)
	}

	args := sendTransactionArgs{
		From:  string(s.account),
		To:    string(tx.To),
		Value: encodeQuantity(tx.Value),
	}
	if len(tx.Data) > 0 {
		args.Data = encodeHex(tx.Data)
	}

	hash, err := s.client.sendTransaction(ctx, args)
	if err != nil {
		if errors.As(err, new(*ErrUserRejectedRequest)) {
			return "", fmt.Errorf("%w: %w", domain.ErrUserRejected, err)
		}
		return "", err
	}

	return domain.TxHash(hash), nil
}

func classifyWalletError(err error) error {
	switch {
	case isUserRejection(err):
		return fmt.Errorf("%w: %w", domain.ErrUserRejected, err)
	case errors.Is(err, domain.ErrProviderUnavailable):
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: node unreachable: %w", domain.ErrProviderUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
}
