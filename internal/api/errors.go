package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/snipurl/snip-cli/internal/constants"
)

// Kind buckets a remote failure for the views: each bucket has its own
// user-facing treatment (re-login, "not found" copy, inline validation,
// generic toast).
type Kind int

const (
	KindGeneric Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
)

// APIError is a remote-call failure with the server's (cleaned) message.
type APIError struct {
	Status  int
	Kind    Kind
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func classify(status int, message string) Kind {
	if strings.Contains(message, constants.ServerMsgNotFound) {
		return KindNotFound
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindGeneric
	}
}

// IsAuth reports whether err is an authentication-class API failure.
func IsAuth(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsNotFound reports whether err is a not-found API failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

var jsonBlockPattern = regexp.MustCompile(`\{.*\}`)

// CleanMessage extracts a user-friendly message from an error. Lower layers
// sometimes concatenate status text with a raw JSON body; when the message
// embeds a {...} object, its "message" (then "error") field is preferred. A
// parse failure degrades to the raw message, and a nil error or empty message
// to the fallback. This never fails.
func CleanMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	msg := err.Error()
	if strings.Contains(msg, "{") && strings.Contains(msg, "}") {
		if block := jsonBlockPattern.FindString(msg); block != "" {
			var parsed struct {
				Message string `json:"message"`
				Error   string `json:"error"`
			}
			if json.Unmarshal([]byte(block), &parsed) == nil {
				if parsed.Message != "" {
					return parsed.Message
				}
				if parsed.Error != "" {
					return parsed.Error
				}
			}
		}
	}

	if msg == "" {
		return fallback
	}
	return msg
}
