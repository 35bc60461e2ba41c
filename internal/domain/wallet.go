package domain

import (
	"context"
	"math/big"
)

type TxHash string

// TxRequest is a value-bearing contract call submitted through a signer.
type TxRequest struct {
	From  Address
	To    Address
	Value *big.Int
	Data  []byte
}

// TxSigner submits transactions on behalf of a connected account.
type TxSigner interface {
	SendTransaction(ctx context.Context, tx TxRequest) (TxHash, error)
}

type WalletIdentity struct {
	Account Address
	Signer  TxSigner
}

func (w WalletIdentity) Connected() bool {
	return w.Account != "" && w.Signer != nil
}
