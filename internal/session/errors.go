package session

import (
	"errors"
	"net/http"

	"github.com/tgienger/taskflow/internal/authapi"
)

// ErrSessionExpired is returned when the service rejected the stored token.
// The session has been cleared and the user must sign in again.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// Kind classifies a failed session operation
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindNetwork
	KindServer
)

// Error is a failure meant to be shown to the user. Message is safe to
// display; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// User-facing messages
const (
	MsgBadCredentials = "Incorrect email or password"
	MsgEmailTaken     = "An account with that email already exists"
	MsgUnreachable    = "Cannot reach the server. Is the backend running?"
	MsgInvalidForm    = "Please check the form and try again"
	MsgAccountGone    = "Your account no longer exists"
	MsgUnknown        = "Something went wrong, please try again"
)

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// classify turns an auth client error into a user-facing Error
func classify(err error) *Error {
	if errors.Is(err, authapi.ErrUnreachable) {
		return &Error{Kind: KindNetwork, Message: MsgUnreachable, Err: err}
	}
	var apiErr *authapi.APIError
	if !errors.As(err, &apiErr) {
		return &Error{Kind: KindServer, Message: MsgUnknown, Err: err}
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		msg := apiErr.Message
		if msg == "" {
			msg = MsgInvalidForm
		}
		return &Error{Kind: KindValidation, Message: msg, Err: err}
	case http.StatusUnauthorized:
		return &Error{Kind: KindAuth, Message: MsgBadCredentials, Err: err}
	case http.StatusConflict:
		return &Error{Kind: KindAuth, Message: MsgEmailTaken, Err: err}
	case http.StatusNotFound:
		return &Error{Kind: KindAuth, Message: MsgAccountGone, Err: err}
	}
	return &Error{Kind: KindServer, Message: MsgUnknown, Err: err}
}
