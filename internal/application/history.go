package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
)

// PurchaseHistory records confirmed purchases and their verification outcome
// so an unverified receipt can be checked again later.
type PurchaseHistory struct {
	log   ports.PurchaseLog
	clock ports.Clock
}

func NewPurchaseHistory(log ports.PurchaseLog, clock ports.Clock) *PurchaseHistory {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &PurchaseHistory{log: log, clock: clock}
}

func (h *PurchaseHistory) RecordConfirmed(ctx context.Context, account domain.Address, contract domain.Address, receipt domain.PurchaseReceipt) error {
	if !receipt.Confirmed {
		return fmt.Errorf("record purchase %s: receipt is not confirmed", receipt.TxHash)
	}

	return h.log.Save(ctx, domain.PurchaseRecord{
		TxHash:      receipt.TxHash,
		Account:     account,
		Contract:    contract,
		Price:       receipt.Price,
		Status:      domain.PurchaseStatusUnverified,
		PurchasedAt: h.clock.Now().UTC(),
	})
}

// RecordVerdict stores the verification outcome. A hash that was never
// recorded, such as one verified by hand, gets a fresh entry.
func (h *PurchaseHistory) RecordVerdict(ctx context.Context, grant domain.AccessGrant) error {
	record, err := h.log.Get(ctx, grant.TxHash)
	if err != nil {
		if !errors.Is(err, domain.ErrPurchaseNotFound) {
			return fmt.Errorf("load purchase %s: %w", grant.TxHash, err)
		}
		record = domain.PurchaseRecord{TxHash: grant.TxHash}
	}

	record.Status = domain.PurchaseStatusDenied
	if grant.Granted {
		record.Status = domain.PurchaseStatusGranted
	}
	record.Reason = grant.Reason
	record.VerifiedAt = h.clock.Now().UTC()

	return h.log.Save(ctx, record)
}

func (h *PurchaseHistory) Get(ctx context.Context, hash domain.TxHash) (domain.PurchaseRecord, error) {
	return h.log.Get(ctx, hash)
}

func (h *PurchaseHistory) List(ctx context.Context) ([]domain.PurchaseRecord, error) {
	return h.log.List(ctx)
}
