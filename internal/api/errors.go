package api

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Error is the single error shape every backend failure funnels through.
// Status is 0 when the request never reached the server (network failure).
// Body holds the raw error payload when one was returned.
type Error struct {
	Status  int
	Body    []byte
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// AsError unwraps err into an *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 response. Callers treat this as
// a navigation trigger rather than a user-visible failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == 401
}

// normalizeDetail extracts a human-readable message from an error body. The
// backend's `detail` field arrives in one of several shapes:
//
//	array of validation errors  -> first entry's msg field
//	plain string                -> the string itself
//	any other object            -> its raw JSON
//	absent or unparsable body   -> "HTTP Error {status}"
func normalizeDetail(status int, body []byte) string {
	fallback := fmt.Sprintf("HTTP Error %d", status)
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fallback
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.IsArray():
		entries := detail.Array()
		if len(entries) == 0 {
			return fallback
		}
		first := entries[0]
		if msg := first.Get("msg"); msg.Exists() {
			return msg.String()
		}
		if first.Type == gjson.String {
			return first.String()
		}
		return first.Raw
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsObject():
		return detail.Raw
	default:
		return fallback
	}
}
