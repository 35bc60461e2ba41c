package ports

import "context"

// SecretStore holds credentials referenced from configuration, such as the
// ledger RPC bearer token.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
