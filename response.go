package redisrest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Response is the outcome of one command inside a pipeline or transaction:
// either a Result or an *Error, never both.
type Response struct {
	result Result
	err    *Error
}

// Success builds a successful Response.
func Success(r Result) Response { return Response{result: r} }

// Failure builds a failed Response.
func Failure(message string) Response { return Response{err: &Error{Message: message}} }

// Result returns the result, or false for a failed command.
func (r Response) Result() (Result, bool) {
	if r.err != nil {
		return Result{}, false
	}
	return r.result, true
}

// Err returns the server error, or nil for a successful command.
func (r Response) Err() *Error { return r.err }

// OK reports whether the command succeeded.
func (r Response) OK() bool { return r.err == nil }

// UnmarshalJSON decodes {"result": ...} or {"error": "..."}.
func (r *Response) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode response element: %w", err)
	}

	if rawErr, ok := fields["error"]; ok {
		var msg string
		if err := json.Unmarshal(rawErr, &msg); err != nil {
			// Non-string error payloads are kept verbatim.
			msg = string(bytes.TrimSpace(rawErr))
		}
		*r = Response{err: &Error{Message: msg}}
		return nil
	}

	if rawResult, ok := fields["result"]; ok {
		result, err := newResult(rawResult)
		if err != nil {
			return fmt.Errorf("decode response result: %w", err)
		}
		*r = Response{result: result}
		return nil
	}

	return errors.New("decode response element: neither result nor error present")
}

// ParseResponses decodes a pipeline or transaction reply. The order of the
// returned slice matches the order the commands were sent in.
func ParseResponses(body []byte) ([]Response, error) {
	var out []Response
	if err := json.Unmarshal(bytes.TrimSpace(body), &out); err != nil {
		return nil, err
	}
	return out, nil
}
