package ports

import "context"

// DescriptorSource fetches the raw contract descriptor artifact produced by
// the deployment step.
type DescriptorSource interface {
	FetchDescriptor(ctx context.Context) ([]byte, error)
}
