package application

import "github.com/bnema/sensor-access-cli/internal/domain"

// SessionView is an immutable snapshot of the session for rendering.
type SessionView struct {
	SessionID            string
	Phase                domain.Phase
	Contract             domain.Address
	Account              domain.Address
	Receipt              *domain.PurchaseReceipt
	Grant                *domain.AccessGrant
	StreamStatus         domain.StreamStatus
	Records              []domain.SensorRecord
	RecordsReceived      uint64
	LastError            *domain.SessionError
	CanRetryVerification bool
	Busy                 bool
}

// Granted reports whether the session currently holds access.
func (v SessionView) Granted() bool {
	return v.Grant != nil && v.Grant.Granted
}
