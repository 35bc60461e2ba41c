package ports

import (
	"context"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

type PurchaseLog interface {
	Get(ctx context.Context, hash domain.TxHash) (domain.PurchaseRecord, error)
	List(ctx context.Context) ([]domain.PurchaseRecord, error)
	Save(ctx context.Context, record domain.PurchaseRecord) error
}
