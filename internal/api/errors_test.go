package api

import (
	"errors"
	"net/http"
	"testing"
)

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{
			"extracts message from embedded json",
			errors.New(`Request failed: {"message":"Slug already exists"}`),
			"fallback",
			"Slug already exists",
		},
		{
			"prefers message over error field",
			errors.New(`500: {"message":"primary","error":"secondary"}`),
			"fallback",
			"primary",
		},
		{
			"falls back to error field",
			errors.New(`500: {"error":"ERR_CODE"}`),
			"fallback",
			"ERR_CODE",
		},
		{
			"plain text passes through unchanged",
			errors.New("plain text error"),
			"fallback",
			"plain text error",
		},
		{
			"nil error returns fallback",
			nil,
			"fallback",
			"fallback",
		},
		{
			"unparseable braces degrade to raw message",
			errors.New("weird {not json} text"),
			"fallback",
			"weird {not json} text",
		},
		{
			"json without known fields degrades to raw message",
			errors.New(`oops: {"detail":"nope"}`),
			"fallback",
			`oops: {"detail":"nope"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMessage(tt.err, tt.fallback); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    Kind
	}{
		{"401 is auth", http.StatusUnauthorized, "Unauthorized", KindUnauthorized},
		{"403 is auth", http.StatusForbidden, "Forbidden", KindUnauthorized},
		{"404 is not found", http.StatusNotFound, "gone", KindNotFound},
		{"400 is validation", http.StatusBadRequest, "bad longURL", KindValidation},
		{"500 is generic", http.StatusInternalServerError, "boom", KindGeneric},
		{
			// The analytics endpoint reports unknown slugs with this message;
			// the distinct bucket drives the "Link Not Found" copy.
			"known not-found message wins over status",
			http.StatusBadRequest,
			"Short Url not found",
			KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.status, tt.message); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	authErr := &APIError{Status: 401, Kind: KindUnauthorized, Message: "Unauthorized"}
	nfErr := &APIError{Status: 404, Kind: KindNotFound, Message: "Short Url not found"}

	if !IsAuth(authErr) {
		t.Error("IsAuth should match an unauthorized APIError")
	}
	if IsAuth(nfErr) {
		t.Error("IsAuth should not match a not-found APIError")
	}
	if !IsNotFound(nfErr) {
		t.Error("IsNotFound should match a not-found APIError")
	}
	if IsAuth(errors.New("plain")) || IsNotFound(errors.New("plain")) {
		t.Error("helpers should not match plain errors")
	}

	wrapped := errors.Join(errors.New("context"), authErr)
	if !IsAuth(wrapped) {
		t.Error("IsAuth should unwrap")
	}
}

func TestAPIError_Error(t *testing.T) {
	e := &APIError{Status: 500, Message: "boom"}
	if e.Error() != "boom" {
		t.Errorf("got %q", e.Error())
	}

	empty := &APIError{Status: 502}
	if empty.Error() != "request failed with status 502" {
		t.Errorf("got %q", empty.Error())
	}
}
