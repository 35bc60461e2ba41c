package ports

import (
	"context"

	"github.com/bnema/sensor-access-cli/internal/domain"
)

// VerificationClient asks the backend whether a transaction grants access.
// Transport failures wrap domain.ErrVerificationUnreachable; an explicit
// denial is returned as a grant with Granted=false and a nil error.
type VerificationClient interface {
	VerifyAccess(ctx context.Context, hash domain.TxHash) (domain.AccessGrant, error)
}
