package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/metrics"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// MaxVerificationAutoRetries caps automatic retries of an unreachable
// verification endpoint. Anything beyond is left to the user.
const MaxVerificationAutoRetries = 1

// AccessVerifier exchanges a transaction hash for an access grant.
type AccessVerifier struct {
	client      ports.VerificationClient
	autoRetries int
	metrics     *metrics.Collectors
	log         *logrus.Entry
}

func NewAccessVerifier(client ports.VerificationClient, autoRetries int, collectors *metrics.Collectors, log *logrus.Entry) *AccessVerifier {
	return &AccessVerifier{
		client:      client,
		autoRetries: clampRetries(autoRetries),
		metrics:     collectors,
		log:         logging.Component(log, "verifier"),
	}
}

func clampRetries(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxVerificationAutoRetries {
		return MaxVerificationAutoRetries
	}
	return n
}

func (v *AccessVerifier) AutoRetries() int {
	return v.autoRetries
}

// Verify returns the backend's verdict for hash. Only errors the client
// reports as unreachable are retried; a denial or any other failure is
// returned as-is.
func (v *AccessVerifier) Verify(ctx context.Context, hash domain.TxHash) (domain.AccessGrant, error) {
	if hash == "" {
		return domain.AccessGrant{}, errors.New("transaction hash is required")
	}

	log := v.log.WithField("tx_hash", hash)

	var lastErr error
	for attempt := 0; attempt <= v.autoRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.AccessGrant{}, fmt.Errorf("%w: %w", domain.ErrVerificationUnreachable, err)
		}

		grant, err := v.client.VerifyAccess(ctx, hash)
		if err == nil {
			grant.TxHash = hash
			if grant.Granted {
				v.metrics.VerificationAttempt("granted")
				log.Info("access granted")
			} else {
				v.metrics.VerificationAttempt("denied")
				log.WithField("reason", grant.Reason).Warn("access denied")
			}
			return grant, nil
		}

		if !errors.Is(err, domain.ErrVerificationUnreachable) {
			log.WithError(err).Error("verification request failed")
			return domain.AccessGrant{}, fmt.Errorf("verify access: %w", err)
		}
		v.metrics.VerificationAttempt("unreachable")
		lastErr = err
		log.WithError(err).WithField("attempt", attempt+1).Warn("verification endpoint unreachable")
	}

	return domain.AccessGrant{}, lastErr
}
