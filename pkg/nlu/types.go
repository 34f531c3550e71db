// Package nlu is a client for the remote natural-language understanding
// service that classifies chat messages for signed-in users.
package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the service rejects the session token
	ErrUnauthorized = errors.New("nlu: unauthorized")
	// ErrUnavailable covers transport failures, non-2xx statuses and
	// payloads without a success flag
	ErrUnavailable = errors.New("nlu: service unavailable")
)

// Client classifies a message on behalf of a session
type Client interface {
	Classify(ctx context.Context, token string, req Request) (*Response, error)
}

// Request is the body sent to the service
type Request struct {
	Message string `json:"message"`
}

// Response is a decoded reply. Fields keeps every key besides success, intent
// and response so intent-specific data reaches the caller untouched.
type Response struct {
	Success  bool
	Intent   string
	Response string
	Fields   map[string]any
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Response{}
	for key, value := range raw {
		var err error
		switch key {
		case "success":
			err = json.Unmarshal(value, &r.Success)
		case "intent":
			err = json.Unmarshal(value, &r.Intent)
		case "response":
			err = json.Unmarshal(value, &r.Response)
		default:
			var v any
			if err = json.Unmarshal(value, &v); err == nil {
				if r.Fields == nil {
					r.Fields = make(map[string]any)
				}
				r.Fields[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}
