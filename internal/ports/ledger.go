package ports

import (
	"context"
	"math/big"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

// ContractLedger is the read and finality side of the access contract.
type ContractLedger interface {
	AccessPrice(ctx context.Context, contract domain.ContractDescriptor) (*big.Int, error)
	EncodePurchase(contract domain.ContractDescriptor) ([]byte, error)
	WaitForReceipt(ctx context.Context, hash domain.TxHash) (domain.TxReceipt, error)
}
