package generate

import (
	"context"
	"time"

	"github.com/storygen-hq/storygen/internal/llm"
	"github.com/storygen-hq/storygen/internal/usage"
)

// HealthStatus is the outcome of a connectivity probe against the
// model provider.
type HealthStatus struct {
	Status          string        `json:"status"`
	Model           string        `json:"model"`
	ResponseTime    time.Duration `json:"response_time"`
	ResponseContent string        `json:"response_content,omitempty"`
	TokenUsage      llm.Usage     `json:"token_usage"`
	Error           string        `json:"error,omitempty"`
}

// HealthCheck sends a minimal completion request to verify the provider
// is reachable and responding.
func (g *Generator) HealthCheck(ctx context.Context) HealthStatus {
	start := time.Now()

	resp, err := g.client.Complete(ctx, &llm.Request{
		Model: g.client.Model(),
		Messages: []llm.Message{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: "Say 'OK' if you can hear me."},
		},
		MaxTokens:   10,
		Temperature: 0.1,
	})
	if err != nil {
		return HealthStatus{
			Status: "unhealthy",
			Model:  g.client.Model(),
			Error:  err.Error(),
		}
	}

	return HealthStatus{
		Status:          "healthy",
		Model:           g.client.Model(),
		ResponseTime:    time.Since(start),
		ResponseContent: resp.Content,
		TokenUsage:      resp.Usage,
	}
}

// UsageReport summarizes token spend over the trailing period together
// with cost alerts and optimization hints.
type UsageReport struct {
	PeriodDays   int                      `json:"period_days"`
	Stats        usage.Stats              `json:"stats"`
	CostAlerts   usage.AlertStatus        `json:"cost_alerts"`
	Optimization usage.OptimizationReport `json:"optimization_recommendations"`
}

func (g *Generator) UsageReport(days int) UsageReport {
	return UsageReport{
		PeriodDays:   days,
		Stats:        g.tracker.Stats(days),
		CostAlerts:   g.tracker.CostAlertStatus(g.dailyLimit, g.monthlyLimit),
		Optimization: g.tracker.Optimize(0.2),
	}
}
