// Package remote resolves messages through the remote understanding service
// and reports every failure as unavailable.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/circuitbreaker"
	"github.com/themobileprof/careportal-assistant/internal/classifier"
	"github.com/themobileprof/careportal-assistant/pkg/nlu"
)

// ErrNoSession is returned before any network call when the user has no
// session token
var ErrNoSession = errors.New("remote: no session")

// Session carries what the adapter needs from authentication
type Session struct {
	HasSession bool
	Token      string
}

// Result is a successful remote classification
type Result struct {
	Intent classifier.Intent
	Text   string
	Fields map[string]any
}

// Adapter wraps an nlu.Client with a circuit breaker
type Adapter struct {
	client  nlu.Client
	breaker *circuitbreaker.Breaker
}

// NewAdapter creates an adapter. A nil breaker disables breaking.
func NewAdapter(client nlu.Client, breaker *circuitbreaker.Breaker) *Adapter {
	return &Adapter{client: client, breaker: breaker}
}

// Resolve sends text to the remote service once. Callers should treat any
// error as Unavailable; IsUnavailable reports exactly that.
func (a *Adapter) Resolve(ctx context.Context, text string, session Session) (Result, error) {
	if !session.HasSession || strings.TrimSpace(session.Token) == "" {
		return Result{}, ErrNoSession
	}
	if a == nil || a.client == nil {
		return Result{}, nlu.ErrUnavailable
	}

	var (
		resp    *nlu.Response
		authErr error
	)
	// 401s are not counted as breaker failures
	call := func() error {
		var err error
		resp, err = a.client.Classify(ctx, session.Token, nlu.Request{Message: text})
		if errors.Is(err, nlu.ErrUnauthorized) {
			authErr = err
			return nil
		}
		return err
	}

	var err error
	if a.breaker != nil {
		err = a.breaker.Do(call)
	} else {
		err = call()
	}
	if authErr != nil {
		return Result{}, authErr
	}
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			return Result{}, fmt.Errorf("%w: %v", nlu.ErrUnavailable, err)
		}
		return Result{}, err
	}

	intent, ok := classifier.ParseIntent(resp.Intent)
	if !ok {
		log.Printf("Remote service returned unknown intent %q, using default", resp.Intent)
		intent = classifier.IntentDefault
	}

	return Result{Intent: intent, Text: resp.Response, Fields: resp.Fields}, nil
}

// IsUnavailable reports whether err is one of the adapter's failure outcomes
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNoSession) ||
		errors.Is(err, nlu.ErrUnauthorized) ||
		errors.Is(err, nlu.ErrUnavailable)
}
