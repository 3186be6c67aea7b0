package analytics

import "context"

// API is the slice of the remote contract this service consumes.
type API interface {
	Analytics(ctx context.Context, slug string) (*Aggregate, error)
	GlobalAnalytics(ctx context.Context) (*GlobalAggregate, error)
}

// QueryCache registers fetches under a key and deduplicates identical
// in-flight requests. Invalidation happens on the command side; this service
// only reads.
type QueryCache interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error)
}
