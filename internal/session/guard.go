package session

import "errors"

var (
	// ErrNotAuthenticated means a protected view was entered without a token.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAlreadyAuthenticated means an auth view was entered with a token present.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// RequireAuth gates protected views. It checks token presence only and runs
// before any request is built, so an unauthenticated entry issues zero network
// calls. The check is optimistic: an expired-but-present token passes here and
// only fails when the server rejects the subsequent request.
func RequireAuth(s Store) error {
	if s.Token() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireAnon is the inverse guard for the login/register views: an already
// authenticated user is pointed forward to the dashboard instead.
func RequireAnon(s Store) error {
	if s.Token() != "" {
		return ErrAlreadyAuthenticated
	}
	return nil
}
