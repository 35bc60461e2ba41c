package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var walletDescriptor = domain.ContractDescriptor{Address: "0xABC"}

func TestWalletSessionConnectIsIdempotent(t *testing.T) {
	provider := mocks.NewMockWalletProvider(t)
	signer := mocks.NewMockTxSigner(t)
	provider.EXPECT().RequestAccounts(mockAnyContext()).Return([]domain.Address{"0x111", "0xDEF"}, nil).Once()
	provider.EXPECT().Signer(domain.Address("0x111")).Return(signer).Once()
	wallet := NewWalletSession(provider, nil)

	identity, err := wallet.Connect(context.Background(), walletDescriptor)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0x111"), identity.Account)
	assert.Same(t, signer, identity.Signer)

	again, err := wallet.Connect(context.Background(), walletDescriptor)
	require.NoError(t, err)
	assert.Equal(t, identity, again)

	current, ok := wallet.Identity()
	assert.True(t, ok)
	assert.Equal(t, identity, current)
}

func TestWalletSessionDisconnectAsksProviderAgain(t *testing.T) {
	provider := mocks.NewMockWalletProvider(t)
	signer := mocks.NewMockTxSigner(t)
	provider.EXPECT().RequestAccounts(mockAnyContext()).Return([]domain.Address{"0x111"}, nil).Twice()
	provider.EXPECT().Signer(domain.Address("0x111")).Return(signer).Twice()
	wallet := NewWalletSession(provider, nil)

	_, err := wallet.Connect(context.Background(), walletDescriptor)
	require.NoError(t, err)

	wallet.Disconnect()
	_, ok := wallet.Identity()
	assert.False(t, ok)

	_, err = wallet.Connect(context.Background(), walletDescriptor)
	require.NoError(t, err)
}

func TestWalletSessionConnectErrors(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Address
		err      error
		want     error
	}{
		{name: "user rejects", err: domain.ErrUserRejected, want: domain.ErrUserRejected},
		{name: "no accounts", accounts: []domain.Address{}, want: domain.ErrUserRejected},
		{name: "provider down", err: domain.ErrProviderUnavailable, want: domain.ErrProviderUnavailable},
		{name: "unclassified failure", err: errors.New("dial tcp 127.0.0.1:8545: connect: connection refused"), want: domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mocks.NewMockWalletProvider(t)
			provider.EXPECT().RequestAccounts(mockAnyContext()).Return(tt.accounts, tt.err).Once()
			wallet := NewWalletSession(provider, nil)

			_, err := wallet.Connect(context.Background(), walletDescriptor)
			require.ErrorIs(t, err, tt.want)

			_, ok := wallet.Identity()
			assert.False(t, ok)
		})
	}
}

func TestWalletSessionWithoutProvider(t *testing.T) {
	_, err := NewWalletSession(nil, nil).Connect(context.Background(), walletDescriptor)
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
