package api

import (
	"encoding/json"

	"github.com/snipurl/snip-cli/internal/session"
)

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RegisterInput is the register endpoint's request body.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginInput is the login endpoint's request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,notblank"`
}

// AuthSession is the token/user pair both auth endpoints return.
type AuthSession struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type userData struct {
	User session.User `json:"user"`
}

type updateLinkBody struct {
	NewSlug string `json:"newSlug"`
}
