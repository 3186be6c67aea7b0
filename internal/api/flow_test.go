package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/snipurl/snip-cli/internal/session"
	"github.com/snipurl/snip-cli/internal/storage/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShortener is a minimal in-memory rendition of the remote API, enough to
// drive the client through the full create -> list -> analytics flow.
type fakeShortener struct {
	links []links.Link
	next  int
}

func (f *fakeShortener) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-e2e" {
				writeEnvelope(w, http.StatusUnauthorized, "Unauthorized", nil)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /link/create", authed(func(w http.ResponseWriter, r *http.Request) {
		var in links.CreateInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		slug := in.CustomSlug
		if slug == "" {
			f.next++
			slug = fmt.Sprintf("gen%03d", f.next)
		}
		for _, l := range f.links {
			if l.Slug == slug {
				writeEnvelope(w, http.StatusBadRequest, "Slug already exists", nil)
				return
			}
		}

		link := links.Link{
			ID:        fmt.Sprintf("id-%s", slug),
			LongURL:   in.LongURL,
			Slug:      slug,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		f.links = append(f.links, link)

		writeEnvelope(w, http.StatusOK, "Link created", links.Created{
			ID:        link.ID,
			LongURL:   link.LongURL,
			ShortURL:  "https://sn.ip/" + slug,
			Slug:      slug,
			CreatedAt: link.CreatedAt,
		})
	}))

	mux.HandleFunc("GET /link/my-links", authed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", links.Page{
			Links: f.links, Total: len(f.links), Page: 1, Limit: 10, TotalPages: 1,
		})
	}))

	mux.HandleFunc("DELETE /link/{slug}", authed(func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		for i, l := range f.links {
			if l.Slug == slug {
				f.links = append(f.links[:i], f.links[i+1:]...)
				writeEnvelope(w, http.StatusOK, "Link deleted", nil)
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, "Short Url not found", nil)
	}))

	mux.HandleFunc("GET /analytics/global", authed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "", map[string]any{
			"totalLinks":   len(f.links),
			"totalClicks":  0,
			"clicksByDate": map[string]int{},
			"browsers":     map[string]int{},
			"referrers":    map[string]int{},
			"geo":          map[string]int{},
			"topLinks":     []any{},
			"aiSummary":    "",
		})
	}))

	return mux
}

func TestEndToEnd_CreateListAnalyticsInvalidation(t *testing.T) {
	fake := &fakeShortener{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := session.NewMemStore()
	require.NoError(t, store.SetToken("tok-e2e"))

	client := newTestClient(t, srv, WithTokenSource(store))

	cache, err := querycache.New(querycache.Config{MaxEntries: 64, TTL: time.Minute})
	require.NoError(t, err)
	defer cache.Close()

	linkSvc := links.NewService(client, cache)
	analyticsSvc := analytics.NewService(client, cache)

	ctx := context.Background()

	// Warm both caches while the account is empty.
	page, err := linkSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, page.Links)

	global, err := analyticsSvc.Global(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, global.TotalLinks)

	// Create a link; the mutation must invalidate both scopes.
	created, err := linkSvc.Create(ctx, links.CreateInput{LongURL: "https://example.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ShortURL, "https://sn.ip/"))

	page, err = linkSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, page.Links, 1)
	assert.Equal(t, "https://example.com", page.Links[0].LongURL)
	assert.Equal(t, created.Slug, page.Links[0].Slug)

	global, err = analyticsSvc.Global(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, global.TotalLinks)

	// Delete it; dependent views go back to empty after the refetch.
	require.NoError(t, linkSvc.Delete(ctx, created.Slug))

	page, err = linkSvc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, page.Links)

	global, err = analyticsSvc.Global(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, global.TotalLinks)

	// A second delete is not swallowed: the server's not-found surfaces.
	err = linkSvc.Delete(ctx, created.Slug)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestEndToEnd_ExpiredSessionClearsStoreOnRemoteRejection(t *testing.T) {
	fake := &fakeShortener{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := session.NewMemStore()
	require.NoError(t, store.SetToken("stale-token"))
	require.NoError(t, store.SetUser(&session.User{ID: "u-1", Email: "x@example.com"}))

	// Production wiring: the unauthorized hook clears the session so the
	// local guard redirects to login on the next command.
	client := newTestClient(t, srv,
		WithTokenSource(store),
		WithUnauthorizedHook(func() { _ = store.Clear() }),
	)

	// Local guard passes (token present) but the server rejects.
	require.NoError(t, session.RequireAuth(store))

	_, err := client.MyLinks(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))

	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.User())
	assert.ErrorIs(t, session.RequireAuth(store), session.ErrNotAuthenticated)
}
