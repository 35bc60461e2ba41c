package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const defaultPollInterval = time.Second

// Ledger reads the access contract and waits for transaction finality.
type Ledger struct {
	client  *Client
	limiter *rate.Limiter
}

// NewLedger builds a ledger that polls for receipts at most once per
// pollInterval.
func NewLedger(client *Client, pollInterval time.Duration) *Ledger {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Ledger{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(pollInterval), 1),
	}
}

func (l *Ledger) AccessPrice(ctx context.Context, contract domain.ContractDescriptor) (*big.Int, error) {
	data, err := callData(contract, priceFunction)
	if err != nil {
		return nil, err
	}

	result, err := l.client.call(ctx, callArgs{To: string(contract.Address), Data: encodeHex(data)})
	if err != nil {
		return nil, err
	}
	return decodeUint256(result)
}

func (l *Ledger) EncodePurchase(contract domain.ContractDescriptor) ([]byte, error) {
	return callData(contract, purchaseFunction)
}

// WaitForReceipt polls until the transaction is mined or ctx ends.
func (l *Ledger) WaitForReceipt(ctx context.Context, hash domain.TxHash) (domain.TxReceipt, error) {
	if hash == "" {
		return domain.TxReceipt{}, errors.New("transaction hash is required")
	}

	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return domain.TxReceipt{}, fmt.Errorf("wait for receipt %s: %w", hash, err)
		}

		raw, err := l.client.transactionReceipt(ctx, string(hash))
		if err != nil {
			return domain.TxReceipt{}, err
		}

		receipt, mined, err := parseReceipt(hash, raw)
		if err != nil {
			return domain.TxReceipt{}, err
		}
		if mined {
			return receipt, nil
		}
	}
}

func parseReceipt(hash domain.TxHash, raw []byte) (domain.TxReceipt, bool, error) {
	result := gjson.ParseBytes(raw)
	if result.Type == gjson.Null || !result.Exists() {
		return domain.TxReceipt{}, false, nil
	}
	if !result.IsObject() {
		return domain.TxReceipt{}, false, fmt.Errorf("unexpected receipt %s", result.Raw)
	}

	receipt := domain.TxReceipt{
		TxHash: hash,
		To:     domain.Address(result.Get("to").String()),
	}
	if block := result.Get("blockNumber"); block.Exists() {
		n, err := decodeQuantity(block.String())
		if err != nil {
			return domain.TxReceipt{}, false, fmt.Errorf("receipt block number: %w", err)
		}
		receipt.BlockNumber = n.Uint64()
	}

	status, err := decodeQuantity(result.Get("status").String())
	if err != nil {
		return domain.TxReceipt{}, false, fmt.Errorf("receipt status: %w", err)
	}
	receipt.Succeeded = status.Cmp(big.NewInt(1)) == 0

	return receipt, true, nil
}
