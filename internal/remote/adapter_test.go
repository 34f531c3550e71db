package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themobileprof/careportal-assistant/internal/circuitbreaker"
	"github.com/themobileprof/careportal-assistant/internal/classifier"
	"github.com/themobileprof/careportal-assistant/pkg/nlu"
)

var signedIn = Session{HasSession: true, Token: "tok-1"}

func TestAdapter_NoSessionSkipsNetwork(t *testing.T) {
	mock := nlu.NewMockClient()
	adapter := NewAdapter(mock, nil)

	for _, s := range []Session{{}, {HasSession: true}, {Token: "tok"}} {
		_, err := adapter.Resolve(context.Background(), "track my delivery", s)
		assert.ErrorIs(t, err, ErrNoSession)
		assert.True(t, IsUnavailable(err))
	}
	assert.Zero(t, mock.CallCount())
}

func TestAdapter_MapsIntent(t *testing.T) {
	mock := nlu.NewMockClient()
	mock.ClassifyFunc = func(ctx context.Context, token string, req nlu.Request) (*nlu.Response, error) {
		assert.Equal(t, "tok-1", token)
		assert.Equal(t, "where is my parcel", req.Message)
		return &nlu.Response{
			Success:  true,
			Intent:   "trackDelivery",
			Response: "Your parcel arrives tomorrow.",
			Fields:   map[string]any{"orderId": "A-17"},
		}, nil
	}

	result, err := NewAdapter(mock, nil).Resolve(context.Background(), "where is my parcel", signedIn)
	require.NoError(t, err)
	assert.Equal(t, classifier.IntentTrackDelivery, result.Intent)
	assert.Equal(t, "Your parcel arrives tomorrow.", result.Text)
	assert.Equal(t, "A-17", result.Fields["orderId"])
}

func TestAdapter_UnknownIntentIsDefault(t *testing.T) {
	mock := nlu.NewMockClient()
	mock.ClassifyFunc = func(ctx context.Context, token string, req nlu.Request) (*nlu.Response, error) {
		return &nlu.Response{Success: true, Intent: "weather_forecast", Response: "Sunny."}, nil
	}

	result, err := NewAdapter(mock, nil).Resolve(context.Background(), "weather?", signedIn)
	require.NoError(t, err)
	assert.Equal(t, classifier.IntentDefault, result.Intent)
	assert.Equal(t, "Sunny.", result.Text)
}

func TestAdapter_FailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unauthorized", nlu.ErrUnauthorized},
		{"unavailable", nlu.ErrUnavailable},
		{"wrapped transport", errors.Join(nlu.ErrUnavailable, context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := nlu.NewMockClient()
			mock.ClassifyFunc = func(ctx context.Context, token string, req nlu.Request) (*nlu.Response, error) {
				return nil, tt.err
			}

			_, err := NewAdapter(mock, nil).Resolve(context.Background(), "hi", signedIn)
			require.Error(t, err)
			assert.True(t, IsUnavailable(err))
			assert.Equal(t, 1, mock.CallCount(), "adapter must not retry")
		})
	}
}

func TestAdapter_OpenBreakerSkipsNetwork(t *testing.T) {
	mock := nlu.NewMockClient()
	mock.ClassifyFunc = func(ctx context.Context, token string, req nlu.Request) (*nlu.Response, error) {
		return nil, nlu.ErrUnavailable
	}
	adapter := NewAdapter(mock, circuitbreaker.New(2, time.Hour))

	for i := 0; i < 2; i++ {
		_, err := adapter.Resolve(context.Background(), "hi", signedIn)
		require.Error(t, err)
	}
	require.Equal(t, 2, mock.CallCount())

	_, err := adapter.Resolve(context.Background(), "hi", signedIn)
	assert.ErrorIs(t, err, nlu.ErrUnavailable)
	assert.Equal(t, 2, mock.CallCount())
}

func TestIsUnavailable(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(errors.New("other")))
	assert.True(t, IsUnavailable(ErrNoSession))
}

func TestAdapter_UnauthorizedDoesNotTripBreaker(t *testing.T) {
	mock := nlu.NewMockClient()
	mock.ClassifyFunc = func(ctx context.Context, token string, req nlu.Request) (*nlu.Response, error) {
		return nil, nlu.ErrUnauthorized
	}
	breaker := circuitbreaker.New(1, time.Hour)
	adapter := NewAdapter(mock, breaker)

	for i := 0; i < 3; i++ {
		_, err := adapter.Resolve(context.Background(), "hi", signedIn)
		assert.ErrorIs(t, err, nlu.ErrUnauthorized)
	}
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, circuitbreaker.StateClosed, breaker.State())
}
