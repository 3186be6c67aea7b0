package links

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/snipurl/snip-cli/internal/infrastructure/validation"
	"github.com/snipurl/snip-cli/internal/storage/querycache"
)

// Service is the link command layer: it validates inputs before any network
// round-trip, drives the remote API, and keeps dependent views fresh by
// invalidating the cached link list and aggregates after every mutation.
type Service struct {
	api   API
	cache Cache
}

func NewService(api API, cache Cache) *Service {
	return &Service{api: api, cache: cache}
}

// Create shortens a URL. Malformed input is refused locally; slug collisions
// and other server-side rejections surface with the server's message.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Created, error) {
	in.LongURL = strings.TrimSpace(in.LongURL)
	in.CustomSlug = strings.TrimSpace(in.CustomSlug)

	if err := validation.Validate(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				if e.Field() == "customSlug" {
					return nil, ErrInvalidSlug
				}
			}
		}
		return nil, ErrInvalidURL
	}

	created, err := s.api.CreateLink(ctx, in)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return created, nil
}

// List returns the first page of the user's links through the query cache.
func (s *Service) List(ctx context.Context) (*Page, error) {
	if s.cache == nil {
		return s.api.MyLinks(ctx)
	}

	val, err := s.cache.GetOrFetch(ctx, querycache.KeyMyLinks, func(ctx context.Context) (any, error) {
		return s.api.MyLinks(ctx)
	})
	if err != nil {
		return nil, err
	}
	return val.(*Page), nil
}

// UpdateSlug renames a link's slug. An unchanged slug is refused locally with
// ErrNoChanges and zero network calls: the request could not change anything.
func (s *Service) UpdateSlug(ctx context.Context, oldSlug, newSlug string) (*Link, error) {
	oldSlug = strings.TrimSpace(oldSlug)
	newSlug = strings.TrimSpace(newSlug)

	if oldSlug == "" || newSlug == "" {
		return nil, ErrEmptySlug
	}
	if newSlug == oldSlug {
		return nil, ErrNoChanges
	}
	if err := validation.Get().Var(newSlug, "slug"); err != nil {
		return nil, ErrInvalidSlug
	}

	updated, err := s.api.UpdateLink(ctx, oldSlug, newSlug)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return updated, nil
}

// Delete removes a link. Deletion is not idempotent: deleting an already
// deleted slug surfaces the server's not-found error untouched.
func (s *Service) Delete(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ErrEmptySlug
	}

	if err := s.api.DeleteLink(ctx, slug); err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(querycache.PrefixLinks, querycache.PrefixAnalytics)
}
