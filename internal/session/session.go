package session

// User is the cached profile of the authenticated account, mirrored from the
// server's auth responses.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Store owns the persisted session: the opaque auth token and the cached user
// profile. Reads always hit durable storage (no in-memory layer), writes are
// synchronous write-throughs, and Set/Remove are idempotent. The store checks
// token presence only; it never validates the token itself.
type Store interface {
	Token() string
	SetToken(token string) error
	RemoveToken() error

	User() *User
	SetUser(u *User) error
	RemoveUser() error

	// Clear removes both token and user profile.
	Clear() error
}
