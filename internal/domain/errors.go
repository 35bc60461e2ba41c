package domain

import "errors"

var (
	ErrConfigUnavailable       = errors.New("contract configuration unavailable")
	ErrProviderUnavailable     = errors.New("wallet provider unavailable")
	ErrUserRejected            = errors.New("request rejected by user")
	ErrWalletNotConnected      = errors.New("wallet not connected")
	ErrPriceUnavailable        = errors.New("access price unavailable")
	ErrTransactionRejected     = errors.New("transaction rejected")
	ErrTransactionFailed       = errors.New("transaction failed")
	ErrPurchaseInProgress      = errors.New("purchase already in progress")
	ErrActionInProgress        = errors.New("another action is in progress")
	ErrVerificationUnreachable = errors.New("verification endpoint unreachable")
	ErrAccessDenied            = errors.New("access denied")
	ErrTransportError          = errors.New("stream transport error")
	ErrStreamClosed            = errors.New("stream closed")
	ErrInvalidTransition       = errors.New("invalid session transition")
	ErrSessionClosed           = errors.New("session shut down")
	ErrPurchaseNotFound        = errors.New("purchase not found")
	ErrCredentialNotFound      = errors.New("credential not found")
	ErrMalformedRecord         = errors.New("malformed sensor record")
)

// ErrorKind classifies a surfaced session error.
type ErrorKind string

const (
	ErrorKindNone                    ErrorKind = ""
	ErrorKindConfigUnavailable       ErrorKind = "config_unavailable"
	ErrorKindProviderUnavailable     ErrorKind = "provider_unavailable"
	ErrorKindUserRejected            ErrorKind = "user_rejected"
	ErrorKindWalletNotConnected      ErrorKind = "wallet_not_connected"
	ErrorKindPriceUnavailable        ErrorKind = "price_unavailable"
	ErrorKindTransactionRejected     ErrorKind = "transaction_rejected"
	ErrorKindTransactionFailed       ErrorKind = "transaction_failed"
	ErrorKindPurchaseInProgress      ErrorKind = "purchase_in_progress"
	ErrorKindActionInProgress        ErrorKind = "action_in_progress"
	ErrorKindVerificationUnreachable ErrorKind = "verification_unreachable"
	ErrorKindDenied                  ErrorKind = "denied"
	ErrorKindTransportError          ErrorKind = "transport_error"
	ErrorKindUnknown                 ErrorKind = "unknown"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrConfigUnavailable, ErrorKindConfigUnavailable},
	{ErrPriceUnavailable, ErrorKindPriceUnavailable},
	{ErrTransactionRejected, ErrorKindTransactionRejected},
	{ErrTransactionFailed, ErrorKindTransactionFailed},
	{ErrPurchaseInProgress, ErrorKindPurchaseInProgress},
	{ErrActionInProgress, ErrorKindActionInProgress},
	{ErrVerificationUnreachable, ErrorKindVerificationUnreachable},
	{ErrAccessDenied, ErrorKindDenied},
	{ErrTransportError, ErrorKindTransportError},
	{ErrProviderUnavailable, ErrorKindProviderUnavailable},
	{ErrUserRejected, ErrorKindUserRejected},
	{ErrWalletNotConnected, ErrorKindWalletNotConnected},
}

// KindOf maps err to the first matching kind. Wrapped errors that carry
// several sentinels resolve to the earliest entry in the table.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	for _, entry := range errorKinds {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return ErrorKindUnknown
}

// SessionError is the user-visible error attached to a session.
type SessionError struct {
	Kind    ErrorKind
	Message string
}

func NewSessionError(err error) *SessionError {
	if err == nil {
		return nil
	}
	return &SessionError{Kind: KindOf(err), Message: err.Error()}
}
