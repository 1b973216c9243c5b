package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionHandler(t *testing.T, status int, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %s", got)
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "nope"}`))
			return
		}

		resp := map[string]any{
			"id":    "chatcmpl-123",
			"model": "gpt-4-turbo-preview",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{
				"prompt_tokens":     120,
				"completion_tokens": 80,
				"total_tokens":      200,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, http.StatusOK, "hello"))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	resp, err := client.Complete(context.Background(), &Request{
		Messages: []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
		Temperature: 0.2,
		MaxTokens:   100,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if resp.Content != "hello" {
		t.Errorf("Content = %s, want hello", resp.Content)
	}
	if resp.RequestID != "chatcmpl-123" {
		t.Errorf("RequestID = %s", resp.RequestID)
	}
	if resp.Usage.PromptTokens != 120 || resp.Usage.CompletionTokens != 80 || resp.Usage.TotalTokens != 200 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestOpenAICompleteRateLimited(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, http.StatusTooManyRequests, ""))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	_, err := client.Complete(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
}

func TestOpenAICompleteServerError(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, http.StatusInternalServerError, ""))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	_, err := client.Complete(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if !ServerError(err) {
		t.Error("500 should classify as server error")
	}
}

func TestOpenAICompleteClientError(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, http.StatusBadRequest, ""))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	_, err := client.Complete(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if !ClientError(err) {
		t.Fatalf("error = %v, want client error", err)
	}
	if errors.Is(err, ErrRateLimited) {
		t.Error("400 must not classify as rate limited")
	}
}

func TestOpenAICompleteCancelledContext(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, http.StatusOK, "late"))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestOpenAIModelFallback(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		completionHandler(t, http.StatusOK, "ok")(w, r)
	}))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", "gpt-4-turbo-preview", OpenAIOptions{BaseURL: srv.URL})

	if _, err := client.Complete(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	}); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if gotModel != "gpt-4-turbo-preview" {
		t.Errorf("request model = %s, want client default", gotModel)
	}
}
