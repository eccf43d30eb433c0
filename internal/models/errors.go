package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure conditions which carry no extra
// data. Compare with errors.Is.
var (
	ErrMissingAPIKey      = errors.New("no API key configured")
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrEmptyResponse      = errors.New("remote response held no choices")
	ErrAuth               = errors.New("remote rejected the API key")
	ErrRateLimited        = errors.New("remote rate limit hit")
	ErrServiceUnavailable = errors.New("remote service unavailable")
	ErrTimeout            = errors.New("request deadline exceeded")
)

// ErrNetwork wraps a transport level failure, meaning the request
// never got a HTTP response at all
type ErrNetwork struct {
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *ErrNetwork) Unwrap() error { return e.Err }

// ErrConfigPersistence wraps a failed configuration write. The
// in-memory intent is kept by the caller, only the durable copy is
// in doubt.
type ErrConfigPersistence struct {
	Err error
}

func (e *ErrConfigPersistence) Error() string {
	return fmt.Sprintf("failed to persist configuration: %v", e.Err)
}

func (e *ErrConfigPersistence) Unwrap() error { return e.Err }

// ErrUnexpectedStatus covers any remote status which doesn't map to
// a more precise error kind
type ErrUnexpectedStatus struct {
	StatusCode int
	Body       string
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code: %v, body: %v", e.StatusCode, e.Body)
}

func NewUnexpectedStatusError(statusCode int, body string) error {
	return &ErrUnexpectedStatus{StatusCode: statusCode, Body: body}
}
