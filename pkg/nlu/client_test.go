package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantBaseURL string
		wantPath    string
		wantTimeout time.Duration
	}{
		{
			name:        "default configuration",
			config:      Config{BaseURL: "https://nlu.example.com"},
			wantBaseURL: "https://nlu.example.com",
			wantPath:    "/api/chat/intent",
		},
		{
			name: "custom configuration",
			config: Config{
				BaseURL:     "https://nlu.example.com/",
				MessagePath: "v2/message",
				Timeout:     5 * time.Second,
			},
			wantBaseURL: "https://nlu.example.com",
			wantPath:    "/v2/message",
			wantTimeout: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(tt.config)

			if client.baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %v, want %v", client.baseURL, tt.wantBaseURL)
			}
			if client.messagePath != tt.wantPath {
				t.Errorf("messagePath = %v, want %v", client.messagePath, tt.wantPath)
			}
			if client.httpClient.Timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, tt.wantTimeout)
			}
		})
	}
}

func TestHTTPClient_Classify(t *testing.T) {
	var gotAuth, gotMessage, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotMessage = req.Message

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"intent":"track_delivery","response":"Your order is on its way.","orderId":"A-17","eta":2}`))
	}))
	defer server.Close()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	resp, err := client.Classify(context.Background(), "tok-123", Request{Message: "where is my parcel"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/api/chat/intent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotMessage != "where is my parcel" {
		t.Errorf("message = %q", gotMessage)
	}
	if resp.Intent != "track_delivery" || resp.Response != "Your order is on its way." {
		t.Errorf("response = %+v", resp)
	}
	if resp.Fields["orderId"] != "A-17" || resp.Fields["eta"] != float64(2) {
		t.Errorf("fields = %v", resp.Fields)
	}
}

func TestHTTPClient_ClassifyFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid token"}`, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, `oops`, ErrUnavailable},
		{"success false", http.StatusOK, `{"success":false,"intent":"greeting"}`, ErrUnavailable},
		{"missing success", http.StatusOK, `{"intent":"greeting"}`, ErrUnavailable},
		{"malformed body", http.StatusOK, `{"success":`, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHTTPClient(Config{BaseURL: server.URL})
			_, err := client.Classify(context.Background(), "tok", Request{Message: "hi"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Classify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPClient_ClassifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewHTTPClient(Config{BaseURL: url})
	_, err := client.Classify(context.Background(), "tok", Request{Message: "hi"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify() error = %v, want ErrUnavailable", err)
	}
}

func TestHTTPClient_ClassifyContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewHTTPClient(Config{BaseURL: server.URL})
	_, err := client.Classify(ctx, "tok", Request{Message: "hi"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify() error = %v, want ErrUnavailable", err)
	}
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()
	resp, err := mock.Classify(context.Background(), "tok", Request{Message: "hello"})
	if err != nil || !resp.Success {
		t.Fatalf("default mock response = %+v, %v", resp, err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d", mock.CallCount())
	}
}
