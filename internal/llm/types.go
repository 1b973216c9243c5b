package llm

import "context"

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a completion request
type Request struct {
	Model            string
	Messages         []Message
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Usage holds token counts reported by the completion API for one call
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response represents a completion response
type Response struct {
	Content   string
	Model     string
	RequestID string
	Usage     Usage
}

// Client is the interface for completion providers
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
