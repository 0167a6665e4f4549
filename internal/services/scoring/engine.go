package scoring

import "lead_gen/internal/domain"

// Tier thresholds. Kept here as the single source of truth: a tier is never
// stored or derived anywhere except through TierForScore.
const (
	HotThreshold  = 70
	WarmThreshold = 40
)

// Component caps. Each factor is capped independently so no single input can
// push the total outside 0..100 on its own; the sum is clamped anyway.
const (
	maxBudgetPoints  = 40
	maxIntentPoints  = 30
	maxBreadthPoints = 30

	pointsPerSelection  = 5
	breadthDimensionCap = 15
)

// Budget bands in EGP. Contribution is monotonically non-decreasing in
// budget; non-positive budgets contribute nothing, never a penalty.
var budgetBands = []struct {
	floor  int64
	points int32
}{
	{5_000_000, 40},
	{3_000_000, 32},
	{1_500_000, 24},
	{750_000, 15},
	{250_000, 8},
	{1, 3},
}

// Input is the buyer slice the engine reads. Callers validate structure;
// the engine is total over any Input value.
type Input struct {
	Budget        int64
	Locations     []string
	PropertyTypes []domain.PropertyType
	BuyingIntent  domain.BuyingIntent
}

// Result is the computed qualification pair. Tier is always derived from
// Score via TierForScore.
type Result struct {
	Score int32
	Tier  domain.ScoreTier
}

// ComputeScore computes the 0..100 lead score and tier for a buyer profile.
// Pure and total: missing or empty optional inputs lower the score, they
// never error.
func ComputeScore(in Input) Result {
	score := budgetPoints(in.Budget) + intentPoints(in.BuyingIntent) + breadthPoints(in)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Tier: TierForScore(score)}
}

// TierForScore maps a clamped score to its tier.
func TierForScore(score int32) domain.ScoreTier {
	switch {
	case score >= HotThreshold:
		return domain.TierHot
	case score >= WarmThreshold:
		return domain.TierWarm
	default:
		return domain.TierCold
	}
}

func budgetPoints(budget int64) int32 {
	if budget <= 0 {
		return 0
	}
	for _, band := range budgetBands {
		if budget >= band.floor {
			return band.points
		}
	}
	return 0
}

func intentPoints(intent domain.BuyingIntent) int32 {
	switch intent {
	case domain.IntentCash:
		return maxIntentPoints
	case domain.IntentInstallment, domain.IntentMortgage:
		return 18
	default:
		return 0
	}
}

// breadthPoints rewards wider declared preferences. Each dimension is capped
// so breadth cannot dominate budget or intent. Duplicates in the declared
// sets are not meaningful and are counted once.
func breadthPoints(in Input) int32 {
	types := distinctTypes(in.PropertyTypes)
	locations := distinctLocations(in.Locations)

	typePts := int32(types) * pointsPerSelection
	if typePts > breadthDimensionCap {
		typePts = breadthDimensionCap
	}
	locPts := int32(locations) * pointsPerSelection
	if locPts > breadthDimensionCap {
		locPts = breadthDimensionCap
	}

	total := typePts + locPts
	if total > maxBreadthPoints {
		total = maxBreadthPoints
	}
	return total
}

func distinctTypes(types []domain.PropertyType) int {
	seen := make(map[domain.PropertyType]struct{}, len(types))
	for _, t := range types {
		if t == domain.PropertyTypeUnspecified {
			continue
		}
		seen[t] = struct{}{}
	}
	return len(seen)
}

func distinctLocations(locations []string) int {
	seen := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		norm := domain.NormalizeLocation(l)
		if norm == "" {
			continue
		}
		seen[norm] = struct{}{}
	}
	return len(seen)
}
