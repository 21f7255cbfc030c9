package search

import (
	"strings"

	"github.com/avolkov/claimlens/internal/model"
)

// QueryStrategy shapes the search query for a class of claims
type QueryStrategy interface {
	// Name returns the strategy name
	Name() string

	// CanHandle checks if this strategy applies to the claim type
	CanHandle(claimType model.ClaimType) bool

	// BuildQuery constructs the search query for the claim
	BuildQuery(claim model.Claim) string
}

// StrategyRegistry selects the query strategy for each claim
type StrategyRegistry struct {
	strategies []QueryStrategy
	generic    QueryStrategy
}

// NewStrategyRegistry creates a registry with the built-in strategies
func NewStrategyRegistry() *StrategyRegistry {
	registry := &StrategyRegistry{}

	registry.Register(&recencyStrategy{})
	registry.Register(&dateStrategy{})
	registry.generic = &genericStrategy{}

	return registry
}

// Register registers a new strategy
func (r *StrategyRegistry) Register(strategy QueryStrategy) {
	r.strategies = append(r.strategies, strategy)
}

// QueryFor builds the search query for a claim
func (r *StrategyRegistry) QueryFor(claim model.Claim) string {
	for _, strategy := range r.strategies {
		if strategy.CanHandle(claim.Type) {
			return strategy.BuildQuery(claim)
		}
	}
	return r.generic.BuildQuery(claim)
}

// genericStrategy searches the claim text verbatim
type genericStrategy struct{}

func (s *genericStrategy) Name() string { return "generic" }

func (s *genericStrategy) CanHandle(claimType model.ClaimType) bool { return true }

func (s *genericStrategy) BuildQuery(claim model.Claim) string {
	return strings.TrimSpace(claim.Text)
}

// recencyStrategy adds a recency hint for data that drifts over time.
// Financial figures and statistics decay fastest; without the hint the
// top results tend to be whatever year the claim itself mentions.
type recencyStrategy struct{}

func (s *recencyStrategy) Name() string { return "recency" }

func (s *recencyStrategy) CanHandle(claimType model.ClaimType) bool {
	switch claimType {
	case model.ClaimTypeFinancial, model.ClaimTypeStatistic, model.ClaimTypeDemographic:
		return true
	}
	return false
}

func (s *recencyStrategy) BuildQuery(claim model.Claim) string {
	return strings.TrimSpace(claim.Text) + " latest data"
}

// dateStrategy anchors historical claims with their entities so that the
// search lands on the event rather than the phrasing
type dateStrategy struct{}

func (s *dateStrategy) Name() string { return "date" }

func (s *dateStrategy) CanHandle(claimType model.ClaimType) bool {
	return claimType == model.ClaimTypeDate
}

func (s *dateStrategy) BuildQuery(claim model.Claim) string {
	query := strings.TrimSpace(claim.Text)
	if len(claim.Entities) > 0 && !strings.Contains(strings.ToLower(query), strings.ToLower(claim.Entities[0])) {
		query = claim.Entities[0] + " " + query
	}
	return query
}
