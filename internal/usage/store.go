package usage

import "context"

// Store mirrors usage records to durable storage. Implementations must
// tolerate being called concurrently.
type Store interface {
	Save(ctx context.Context, u TokenUsage) error
}
