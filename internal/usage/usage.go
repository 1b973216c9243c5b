package usage

import (
	"time"

	"github.com/google/uuid"
)

// Pricing per 1K tokens, in USD. Unknown models are billed at the
// gpt-4-turbo-preview rate so cost estimates stay conservative.
var pricing = map[string]struct {
	Prompt     float64
	Completion float64
}{
	"gpt-4-turbo-preview": {Prompt: 0.01, Completion: 0.03},
	"gpt-4":               {Prompt: 0.03, Completion: 0.06},
	"gpt-3.5-turbo":       {Prompt: 0.001, Completion: 0.002},
}

const defaultPricingModel = "gpt-4-turbo-preview"

// TokenUsage records the token consumption of a single model call.
type TokenUsage struct {
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	RequestID        string    `json:"request_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	EstimatedCost    float64   `json:"estimated_cost"`
}

// NewTokenUsage builds a usage record with the cost precomputed. A
// request id is assigned when the caller has none from the provider.
func NewTokenUsage(model string, promptTokens, completionTokens int, requestID string) TokenUsage {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	u := TokenUsage{
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		RequestID:        requestID,
		Timestamp:        time.Now().UTC(),
	}
	u.EstimatedCost = EstimateCost(model, promptTokens, completionTokens)
	return u
}

// EstimateCost returns the USD cost of a call at current list pricing.
func EstimateCost(model string, promptTokens, completionTokens int) float64 {
	rates, ok := pricing[model]
	if !ok {
		rates = pricing[defaultPricingModel]
	}

	promptCost := float64(promptTokens) / 1000 * rates.Prompt
	completionCost := float64(completionTokens) / 1000 * rates.Completion
	return promptCost + completionCost
}

// Stats aggregates usage over a period.
type Stats struct {
	TotalRequests           int       `json:"total_requests"`
	TotalTokens             int       `json:"total_tokens"`
	TotalCost               float64   `json:"total_cost"`
	AverageTokensPerRequest float64   `json:"average_tokens_per_request"`
	AverageCostPerRequest   float64   `json:"average_cost_per_request"`
	PeriodStart             time.Time `json:"period_start"`
	PeriodEnd               time.Time `json:"period_end"`
}

// AlertStatus reports where current spend sits against configured
// cost limits. Alerts trip at 80% of the limit.
type AlertStatus struct {
	DailyAlert        bool    `json:"daily_alert"`
	MonthlyAlert      bool    `json:"monthly_alert"`
	DailyUsage        float64 `json:"daily_usage"`
	MonthlyUsage      float64 `json:"monthly_usage"`
	DailyLimit        float64 `json:"daily_limit"`
	MonthlyLimit      float64 `json:"monthly_limit"`
	DailyPercentage   float64 `json:"daily_percentage"`
	MonthlyPercentage float64 `json:"monthly_percentage"`
}
