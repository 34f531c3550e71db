package nlu

import (
	"context"
	"sync"
)

// MockClient implements Client for tests
type MockClient struct {
	mu sync.Mutex

	// ClassifyFunc customizes the response. A nil func answers a greeting.
	ClassifyFunc func(ctx context.Context, token string, req Request) (*Response, error)

	Calls []Request
}

// NewMockClient creates a new mock client with default behavior
func NewMockClient() *MockClient {
	return &MockClient{Calls: make([]Request, 0)}
}

// Classify implements Client.Classify
func (m *MockClient) Classify(ctx context.Context, token string, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, token, req)
	}
	return &Response{Success: true, Intent: "greeting", Response: "Hello from the mock service."}, nil
}

// CallCount returns how many times Classify ran
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
