package application

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/metrics"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// PurchaseFlow drives one purchase transaction to finality. At most one
// purchase runs at a time; overlapping calls fail with ErrPurchaseInProgress.
type PurchaseFlow struct {
	ledger  ports.ContractLedger
	clock   ports.Clock
	metrics *metrics.Collectors
	log     *logrus.Entry

	inFlight atomic.Bool
}

func NewPurchaseFlow(ledger ports.ContractLedger, clock ports.Clock, collectors *metrics.Collectors, log *logrus.Entry) *PurchaseFlow {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PurchaseFlow{
		ledger:  ledger,
		clock:   clock,
		metrics: collectors,
		log:     logging.Component(log, "purchase"),
	}
}

func (p *PurchaseFlow) InFlight() bool {
	return p.inFlight.Load()
}

func (p *PurchaseFlow) Purchase(ctx context.Context, identity domain.WalletIdentity, descriptor domain.ContractDescriptor) (domain.PurchaseReceipt, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return domain.PurchaseReceipt{}, domain.ErrPurchaseInProgress
	}
	defer p.inFlight.Store(false)

	if !identity.Connected() {
		return domain.PurchaseReceipt{}, domain.ErrWalletNotConnected
	}

	started := p.clock.Now()
	receipt, err := p.purchase(ctx, identity, descriptor)
	result := "confirmed"
	if err != nil {
		result = string(domain.KindOf(err))
	}
	p.metrics.PurchaseFinished(result, p.clock.Now().Sub(started).Seconds())

	return receipt, err
}

func (p *PurchaseFlow) purchase(ctx context.Context, identity domain.WalletIdentity, descriptor domain.ContractDescriptor) (domain.PurchaseReceipt, error) {
	log := p.log.WithFields(logrus.Fields{"account": identity.Account, "contract": descriptor.Address})

	price, err := p.ledger.AccessPrice(ctx, descriptor)
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: %w", domain.ErrPriceUnavailable, err)
	}
	if price == nil || price.Sign() < 0 {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: ledger returned invalid price", domain.ErrPriceUnavailable)
	}
	log = log.WithField("price", price.String())
	log.Debug("access price read")

	data, err := p.ledger.EncodePurchase(descriptor)
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: encode purchase call: %w", domain.ErrTransactionRejected, err)
	}

	hash, err := identity.Signer.SendTransaction(ctx, domain.TxRequest{
		From:  identity.Account,
		To:    descriptor.Address,
		Value: price,
		Data:  data,
	})
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: %w", domain.ErrTransactionRejected, err)
	}
	if hash == "" {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: signer returned no transaction hash", domain.ErrTransactionRejected)
	}
	log = log.WithField("tx_hash", hash)
	log.Info("purchase submitted, waiting for finality")

	txReceipt, err := p.ledger.WaitForReceipt(ctx, hash)
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: wait for %s: %w", domain.ErrTransactionFailed, hash, err)
	}
	if !txReceipt.Succeeded {
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: %s reverted", domain.ErrTransactionFailed, hash)
	}

	log.WithField("block", txReceipt.BlockNumber).Info("purchase confirmed")
	return domain.PurchaseReceipt{TxHash: hash, Confirmed: true, Price: price}, nil
}
