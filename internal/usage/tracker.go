package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const dateKeyLayout = "2006-01-02"

// Tracker accumulates token usage in memory and mirrors each record to
// an optional durable store. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	history []TokenUsage
	daily   map[string]*Stats
	store   Store
}

// NewTracker creates a tracker. store may be nil, in which case usage
// is kept in memory only.
func NewTracker(store Store) *Tracker {
	return &Tracker{
		daily: make(map[string]*Stats),
		store: store,
	}
}

// Track records a usage event. Store failures are logged and never
// propagate; losing a mirror write must not fail a generation.
func (t *Tracker) Track(ctx context.Context, u TokenUsage) {
	if u.Timestamp.IsZero() {
		u.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	t.history = append(t.history, u)

	dateKey := u.Timestamp.Format(dateKeyLayout)
	stats, ok := t.daily[dateKey]
	if !ok {
		dayStart := u.Timestamp.Truncate(24 * time.Hour)
		stats = &Stats{
			PeriodStart: dayStart,
			PeriodEnd:   dayStart.Add(24*time.Hour - time.Nanosecond),
		}
		t.daily[dateKey] = stats
	}

	stats.TotalRequests++
	stats.TotalTokens += u.TotalTokens
	stats.TotalCost += u.EstimatedCost
	stats.AverageTokensPerRequest = float64(stats.TotalTokens) / float64(stats.TotalRequests)
	stats.AverageCostPerRequest = stats.TotalCost / float64(stats.TotalRequests)
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.Save(ctx, u); err != nil {
			log.Warn().Err(err).Str("request_id", u.RequestID).Msg("failed to persist token usage")
		}
	}

	log.Debug().
		Str("model", u.Model).
		Int("total_tokens", u.TotalTokens).
		Float64("estimated_cost", u.EstimatedCost).
		Msg("tracked token usage")
}

// Stats aggregates usage over the trailing number of days.
func (t *Tracker) Stats(days int) Stats {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -days)

	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Stats{PeriodStart: cutoff, PeriodEnd: now}
	for _, u := range t.history {
		if u.Timestamp.Before(cutoff) {
			continue
		}
		stats.TotalRequests++
		stats.TotalTokens += u.TotalTokens
		stats.TotalCost += u.EstimatedCost
	}

	if stats.TotalRequests > 0 {
		stats.AverageTokensPerRequest = float64(stats.TotalTokens) / float64(stats.TotalRequests)
		stats.AverageCostPerRequest = stats.TotalCost / float64(stats.TotalRequests)
	}
	return stats
}

// DailyStats returns the aggregate for a specific day, or false when no
// usage was recorded that day.
func (t *Tracker) DailyStats(date time.Time) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.daily[date.UTC().Format(dateKeyLayout)]
	if !ok {
		return Stats{}, false
	}
	return *stats, true
}

// CostAlertStatus compares today's and the trailing month's spend
// against the given limits.
func (t *Tracker) CostAlertStatus(dailyLimit, monthlyLimit float64) AlertStatus {
	today, hasToday := t.DailyStats(time.Now().UTC())
	monthly := t.Stats(30)

	status := AlertStatus{
		MonthlyUsage: monthly.TotalCost,
		DailyLimit:   dailyLimit,
		MonthlyLimit: monthlyLimit,
	}

	if hasToday {
		status.DailyUsage = today.TotalCost
		status.DailyPercentage = today.TotalCost / dailyLimit * 100
		status.DailyAlert = today.TotalCost >= dailyLimit*0.8
	}

	status.MonthlyPercentage = monthly.TotalCost / monthlyLimit * 100
	status.MonthlyAlert = monthly.TotalCost >= monthlyLimit*0.8

	return status
}

// OptimizationReport summarizes the trailing week's spend with
// suggested reductions.
type OptimizationReport struct {
	CurrentWeeklyCost string   `json:"current_weekly_cost"`
	TargetWeeklyCost  string   `json:"target_weekly_cost"`
	Recommendations   []string `json:"recommendations"`
}

// Optimize inspects the trailing week of usage and recommends ways to
// cut token spend by targetReduction (a fraction, e.g. 0.2 for 20%).
func (t *Tracker) Optimize(targetReduction float64) OptimizationReport {
	weekly := t.Stats(7)

	recommendations := []string{}
	if weekly.AverageTokensPerRequest > 2000 {
		recommendations = append(recommendations,
			"Consider reducing prompt length or using more specific prompts to reduce token usage.")
	}
	if weekly.TotalCost > 10.0 {
		recommendations = append(recommendations,
			"High weekly costs detected. Consider using gpt-3.5-turbo for simpler tasks.")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	t.mu.Lock()
	var count, promptTokens, completionTokens int
	for _, u := range t.history {
		if u.Timestamp.Before(cutoff) {
			continue
		}
		count++
		promptTokens += u.PromptTokens
		completionTokens += u.CompletionTokens
	}
	t.mu.Unlock()

	if count > 0 {
		avgPrompt := float64(promptTokens) / float64(count)
		avgCompletion := float64(completionTokens) / float64(count)
		if avgPrompt > avgCompletion*2 {
			recommendations = append(recommendations,
				"Prompt tokens are significantly higher than completion tokens. Consider optimizing prompt templates.")
		}
	}

	return OptimizationReport{
		CurrentWeeklyCost: fmt.Sprintf("$%.2f", weekly.TotalCost),
		TargetWeeklyCost:  fmt.Sprintf("$%.2f", weekly.TotalCost*(1-targetReduction)),
		Recommendations:   recommendations,
	}
}
