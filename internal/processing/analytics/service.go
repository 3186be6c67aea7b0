package analytics

import (
	"context"
	"strings"

	"github.com/snipurl/snip-cli/internal/storage/querycache"
)

// Service fetches aggregates through the query cache. Aggregates are keyed by
// (scope, slug|global) and never persisted: a cache entry lives until its TTL
// or until a mutating link command invalidates the scope.
type Service struct {
	api   API
	cache QueryCache
}

func NewService(api API, cache QueryCache) *Service {
	return &Service{api: api, cache: cache}
}

// ForLink returns the aggregate for one of the user's links.
func (s *Service) ForLink(ctx context.Context, slug string) (*Aggregate, error) {
	slug = strings.TrimSpace(slug)

	if s.cache == nil {
		return s.api.Analytics(ctx, slug)
	}

	val, err := s.cache.GetOrFetch(ctx, querycache.KeyLinkAnalytics(slug), func(ctx context.Context) (any, error) {
		return s.api.Analytics(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return val.(*Aggregate), nil
}

// Global returns the account-wide aggregate.
func (s *Service) Global(ctx context.Context) (*GlobalAggregate, error) {
	if s.cache == nil {
		return s.api.GlobalAnalytics(ctx)
	}

	val, err := s.cache.GetOrFetch(ctx, querycache.KeyGlobalAnalytics, func(ctx context.Context) (any, error) {
		return s.api.GlobalAnalytics(ctx)
	})
	if err != nil {
		return nil, err
	}
	return val.(*GlobalAggregate), nil
}
