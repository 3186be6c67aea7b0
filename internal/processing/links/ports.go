package links

import (
	"context"
	"errors"
)

var (
	ErrInvalidURL  = errors.New("invalid url")
	ErrInvalidSlug = errors.New("invalid slug")
	ErrEmptySlug   = errors.New("empty slug")
	// ErrNoChanges is the local refusal of an update whose new slug equals the
	// old one; no request is sent for it.
	ErrNoChanges = errors.New("no changes")
)

// API is the remote link contract this service drives.
type API interface {
	CreateLink(ctx context.Context, in CreateInput) (*Created, error)
	MyLinks(ctx context.Context) (*Page, error)
	UpdateLink(ctx context.Context, slug, newSlug string) (*Link, error)
	DeleteLink(ctx context.Context, slug string) error
}

// Cache is the query-cache collaborator: reads go through GetOrFetch, and
// every successful mutation invalidates the stale scopes by prefix.
type Cache interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error)
	Invalidate(prefixes ...string)
}
