package domain

import (
	"math/big"
	"time"
)

// PurchaseReceipt is created when a purchase transaction is submitted and is
// confirmed once the ledger finalizes it.
type PurchaseReceipt struct {
	TxHash    TxHash
	Confirmed bool
	Price     *big.Int
}

// TxReceipt is the ledger's view of a finalized transaction.
type TxReceipt struct {
	TxHash      TxHash
	Succeeded   bool
	To          Address
	BlockNumber uint64
}

type PurchaseStatus string

const (
	PurchaseStatusUnverified PurchaseStatus = "unverified"
	PurchaseStatusGranted    PurchaseStatus = "granted"
	PurchaseStatusDenied     PurchaseStatus = "denied"
)

// PurchaseRecord is the persisted history entry for a confirmed purchase.
type PurchaseRecord struct {
	TxHash      TxHash
	Account     Address
	Contract    Address
	Price       *big.Int
	Status      PurchaseStatus
	Reason      string
	PurchasedAt time.Time
	VerifiedAt  time.Time
}
