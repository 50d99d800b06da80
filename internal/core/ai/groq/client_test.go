package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Groq: config.GroqConfig{
			APIKey:      "test-key",
			BaseURL:     baseURL,
			Model:       "meta-llama/llama-4-scout-17b-16e-instruct",
			Temperature: 0.3,
			MaxTokens:   4096,
			Timeout:     5 * time.Second,
		},
	}
}

func completionBody(content, finishReason string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotReq Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(`[{"title":"Omelette"}]`, "stop"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Content != `[{"title":"Omelette"}]` {
		t.Fatalf("unexpected content %q", got.Content)
	}
	if !got.FinishedNormally {
		t.Fatal("expected FinishedNormally for finish_reason=stop")
	}

	// 請求格式：system + user 兩則訊息、模型與採樣參數來自配置
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected roles %s/%s", gotReq.Messages[0].Role, gotReq.Messages[1].Role)
	}
	if gotReq.Model != "meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Fatalf("unexpected model %s", gotReq.Model)
	}
	if gotReq.Temperature != 0.3 || gotReq.MaxTokens != 4096 {
		t.Fatalf("unexpected sampling params: %v / %v", gotReq.Temperature, gotReq.MaxTokens)
	}
}

func TestCompleteTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(`[{"title":"Partial`, "length"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FinishedNormally {
		t.Fatal("expected truncated completion for finish_reason=length")
	}
}

func TestCompleteUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(testConfig(server.URL))
			_, err := client.Complete(context.Background(), "system", "user")
			assertSourceUnavailable(t, err)
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立刻關掉，讓連線被拒

	client := NewClient(testConfig(server.URL))
	_, err := client.Complete(context.Background(), "system", "user")
	assertSourceUnavailable(t, err)
}

func assertSourceUnavailable(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var customErr *common.CustomError
	if !errors.As(err, &customErr) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if customErr.Code != "SUGGESTION_SOURCE_UNAVAILABLE" {
		t.Fatalf("expected SUGGESTION_SOURCE_UNAVAILABLE, got %s", customErr.Code)
	}
}
