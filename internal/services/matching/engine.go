package matching

import (
	"github.com/samber/lo"

	"lead_gen/internal/domain"
)

// ReasonCode identifies a single failed match criterion. Codes are stable
// wire identifiers; the presentation layer resolves them to localized text.
type ReasonCode string

const (
	ReasonBudgetExceeded   ReasonCode = "budgetExceeded"
	ReasonLocationMismatch ReasonCode = "locationMismatch"
	ReasonTypeMismatch     ReasonCode = "typeMismatch"
)

// DefaultBudgetTolerance is the allowed price overage as a fraction of the
// buyer's budget. Product behavior is a strict comparison, so the default
// is zero; a deployment can relax it via MATCH_BUDGET_TOLERANCE_PCT.
const DefaultBudgetTolerance = 0.0

// BuyerInput is the preference slice the engine evaluates. Empty preference
// sets mean "no constraint on this dimension".
type BuyerInput struct {
	Budget        int64
	Locations     []string
	PropertyTypes []domain.PropertyType
}

// PropertyInput is the listing slice the engine evaluates.
type PropertyInput struct {
	Price        int64
	Location     string
	PropertyType domain.PropertyType
}

// Result of one evaluation. Reasons is empty iff Matches is true, and always
// lists failures in the fixed order budget, location, type so warnings render
// stably.
type Result struct {
	Matches bool
	Reasons []ReasonCode
}

// Engine evaluates buyer preferences against a concrete listing. It holds
// only the configured budget tolerance and is safe for concurrent use.
type Engine struct {
	budgetTolerance float64
}

// NewEngine builds an engine. A negative tolerance is treated as strict.
func NewEngine(budgetTolerance float64) *Engine {
	if budgetTolerance < 0 {
		budgetTolerance = DefaultBudgetTolerance
	}
	return &Engine{budgetTolerance: budgetTolerance}
}

// Evaluate checks the three criteria without short-circuiting, so the reason
// list is complete in one pass. Pure and total: it cannot fail for any
// structurally valid pair.
func (e *Engine) Evaluate(buyer BuyerInput, property PropertyInput) Result {
	var reasons []ReasonCode

	if e.budgetExceeded(buyer, property) {
		reasons = append(reasons, ReasonBudgetExceeded)
	}
	if locationMismatch(buyer, property) {
		reasons = append(reasons, ReasonLocationMismatch)
	}
	if typeMismatch(buyer, property) {
		reasons = append(reasons, ReasonTypeMismatch)
	}

	return Result{Matches: len(reasons) == 0, Reasons: reasons}
}

// budgetExceeded fails when the price overshoots the budget beyond the
// configured tolerance. A non-positive budget is treated as undeclared and
// never blocks.
func (e *Engine) budgetExceeded(buyer BuyerInput, property PropertyInput) bool {
	if buyer.Budget <= 0 {
		return false
	}
	limit := float64(buyer.Budget) * (1 + e.budgetTolerance)
	return float64(property.Price) > limit
}

func locationMismatch(buyer BuyerInput, property PropertyInput) bool {
	if len(buyer.Locations) == 0 {
		return false
	}
	return !lo.SomeBy(buyer.Locations, func(l string) bool {
		return domain.LocationsMatch(l, property.Location)
	})
}

func typeMismatch(buyer BuyerInput, property PropertyInput) bool {
	if len(buyer.PropertyTypes) == 0 {
		return false
	}
	return !lo.Contains(buyer.PropertyTypes, property.PropertyType)
}
