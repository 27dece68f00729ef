package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anitrack-cli/anitrack/constant"
)

// ErrEmptyResult is returned when the backend answers with an empty row set where one row is expected.
var ErrEmptyResult = errors.New("empty result")

// UnauthorizedError is a 401 response. Message is the backend's reason.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Message
}

// Expired reports whether the token has expired.
func (e *UnauthorizedError) Expired() bool {
	return e.Message == constant.MsgTokenExpired
}

// Rejected reports whether the backend refused the token itself, as opposed to other 401 causes.
func (e *UnauthorizedError) Rejected() bool {
	return e.Expired() || e.Message == constant.MsgTokenInvalid
}

// StatusError is any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unexpected status"
	}

	if e.Body == "" {
		return fmt.Sprintf("%d %s", e.Code, text)
	}
	return fmt.Sprintf("%d %s: %s", e.Code, text, e.Body)
}

// AsUnauthorized unwraps a 401 error.
func AsUnauthorized(err error) (*UnauthorizedError, bool) {
	var u *UnauthorizedError
	if errors.As(err, &u) {
		return u, true
	}
	return nil, false
}

// IsTokenExpired reports whether err is a 401 with the "Token expired" message.
func IsTokenExpired(err error) bool {
	u, ok := AsUnauthorized(err)
	return ok && u.Expired()
}

// IsTokenRejected reports whether err is a 401 caused by an expired or invalid token.
func IsTokenRejected(err error) bool {
	u, ok := AsUnauthorized(err)
	return ok && u.Rejected()
}

func statusError(code int, raw []byte) error {
	msg := message(raw)
	if code == http.StatusUnauthorized {
		return &UnauthorizedError{Message: msg}
	}
	return &StatusError{Code: code, Body: msg}
}

// message extracts the reason from a plain text body, a JSON string or a JSON object.
func message(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(trimmed, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	return string(trimmed)
}
