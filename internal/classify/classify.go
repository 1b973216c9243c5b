// Package classify infers a story's business domain and structural
// complexity from its text when the caller does not supply them. Both
// operations are pure functions over the request.
package classify

import (
	"strings"

	"github.com/storygen-hq/storygen/pkg/model"
)

// domainKeywords maps each domain to its signal keywords. Matching is
// case-insensitive substring containment over the story description.
var domainKeywords = map[model.Domain][]string{
	model.DomainEcommerce:  {"cart", "checkout", "product", "order", "payment", "shop", "buy", "purchase"},
	model.DomainFinance:    {"payment", "transaction", "account", "balance", "banking", "credit", "loan"},
	model.DomainHealthcare: {"patient", "medical", "doctor", "treatment", "prescription", "health", "clinical"},
	model.DomainSaaS:       {"subscription", "tenant", "dashboard", "analytics", "configuration", "integration"},
	model.DomainMobile:     {"mobile", "app", "touch", "swipe", "notification", "offline", "device"},
	model.DomainAPI:        {"api", "endpoint", "service", "webhook", "integration", "json", "rest"},
}

var integrationKeywords = []string{"integrate", "api", "service", "external", "third-party", "webhook"}

// DetectDomain scores each domain by keyword occurrences in the
// description and returns the highest-scoring one. Ties go to the first
// domain in model.Domains() order; no keyword hits means general.
func DetectDomain(description string) model.Domain {
	lower := strings.ToLower(description)

	best := model.DomainGeneral
	bestScore := 0
	for _, domain := range model.Domains() {
		score := 0
		for _, keyword := range domainKeywords[domain] {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = domain
			bestScore = score
		}
	}

	return best
}

// StoryTraits carries the request fields complexity estimation reads.
type StoryTraits struct {
	Description        string
	AcceptanceCriteria string
	Personas           []string
	BusinessRules      []string
}

// EstimateComplexity accumulates a 0-1 score from story characteristics
// and maps it onto the three complexity buckets.
func EstimateComplexity(traits StoryTraits) model.Complexity {
	score := 0.0

	criteriaLines := len(strings.Split(traits.AcceptanceCriteria, "\n"))
	switch {
	case criteriaLines > 10:
		score += 0.3
	case criteriaLines > 5:
		score += 0.15
	}

	descriptionWords := len(strings.Fields(traits.Description))
	switch {
	case descriptionWords > 100:
		score += 0.2
	case descriptionWords > 50:
		score += 0.1
	}

	lower := strings.ToLower(traits.Description)
	for _, keyword := range integrationKeywords {
		if strings.Contains(lower, keyword) {
			score += 0.2
			break
		}
	}

	if len(traits.Personas) > 2 {
		score += 0.15
	}
	if len(traits.BusinessRules) > 3 {
		score += 0.15
	}

	switch {
	case score >= 0.7:
		return model.ComplexityComplex
	case score >= 0.3:
		return model.ComplexityMedium
	default:
		return model.ComplexitySimple
	}
}
