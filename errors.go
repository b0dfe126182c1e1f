package redisrest

import (
	"errors"
	"fmt"
)

var (
	// ErrHostRequired is returned by New when the host is empty.
	ErrHostRequired = errors.New("redisrest: host is required")
	// ErrTokenRequired is returned by New when the token is empty.
	ErrTokenRequired = errors.New("redisrest: token is required")
)

// Error is a failure reported by the service, decoded from {"error": "..."}.
// Local decode failures ("Invalid json value") use it too.
type Error struct {
	Message string `json:"error"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// TransportError means no usable reply came back: the request failed on the
// network, or the body could not be read as a reply or as an error.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode == 0 {
		return fmt.Sprintf("redisrest: transport failure: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("redisrest: transport failure: status=%d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("redisrest: transport failure: status=%d body=%s", e.StatusCode, string(e.Body))
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
