package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lead_gen/internal/domain"
)

func TestComputeScore_CashBuyerWithHighBudgetIsHot(t *testing.T) {
	res := ComputeScore(Input{
		Budget:        5_000_000,
		Locations:     []string{"New Cairo"},
		PropertyTypes: []domain.PropertyType{domain.PropertyTypeApartment},
		BuyingIntent:  domain.IntentCash,
	})

	assert.GreaterOrEqual(t, res.Score, int32(HotThreshold))
	assert.Equal(t, domain.TierHot, res.Tier)
}

func TestComputeScore_MinimalProfileIsCold(t *testing.T) {
	res := ComputeScore(Input{Budget: 500_000})

	assert.Less(t, res.Score, int32(WarmThreshold))
	assert.Equal(t, domain.TierCold, res.Tier)
}

func TestComputeScore_EmptyInputDoesNotPanic(t *testing.T) {
	res := ComputeScore(Input{})

	assert.Equal(t, int32(0), res.Score)
	assert.Equal(t, domain.TierCold, res.Tier)
}

func TestComputeScore_NegativeBudgetContributesZero(t *testing.T) {
	base := ComputeScore(Input{BuyingIntent: domain.IntentCash})
	negative := ComputeScore(Input{Budget: -1_000_000, BuyingIntent: domain.IntentCash})

	assert.Equal(t, base.Score, negative.Score)
}

func TestComputeScore_MonotonicInBudget(t *testing.T) {
	budgets := []int64{0, 100_000, 250_000, 749_999, 750_000, 1_500_000,
		2_999_999, 3_000_000, 4_999_999, 5_000_000, 50_000_000}

	prev := int32(-1)
	for _, b := range budgets {
		res := ComputeScore(Input{
			Budget:        b,
			Locations:     []string{"Maadi"},
			PropertyTypes: []domain.PropertyType{domain.PropertyTypeVilla},
			BuyingIntent:  domain.IntentMortgage,
		})
		assert.GreaterOrEqual(t, res.Score, prev, "score dropped at budget %d", b)
		prev = res.Score
	}
}

func TestComputeScore_BoundedAndTierConsistent(t *testing.T) {
	manyLocations := []string{"New Cairo", "Zamalek", "Maadi", "Heliopolis",
		"Nasr City", "6th of October", "Sheikh Zayed", "Alexandria"}
	allTypes := []domain.PropertyType{
		domain.PropertyTypeApartment, domain.PropertyTypeVilla,
		domain.PropertyTypeTownhouse, domain.PropertyTypeDuplex,
		domain.PropertyTypeCommercial,
	}

	cases := []Input{
		{},
		{Budget: 1},
		{Budget: 100_000_000, Locations: manyLocations, PropertyTypes: allTypes, BuyingIntent: domain.IntentCash},
		{Budget: 2_000_000, BuyingIntent: domain.IntentInstallment},
		{Locations: manyLocations},
		{PropertyTypes: allTypes},
	}

	for _, in := range cases {
		res := ComputeScore(in)
		assert.GreaterOrEqual(t, res.Score, int32(0))
		assert.LessOrEqual(t, res.Score, int32(100))

		// Tier must always agree with the returned score.
		switch {
		case res.Score >= HotThreshold:
			assert.Equal(t, domain.TierHot, res.Tier)
		case res.Score >= WarmThreshold:
			assert.Equal(t, domain.TierWarm, res.Tier)
		default:
			assert.Equal(t, domain.TierCold, res.Tier)
		}
	}
}

func TestComputeScore_BreadthIsCapped(t *testing.T) {
	few := ComputeScore(Input{Locations: []string{"Maadi", "Zamalek", "New Cairo"}})
	many := ComputeScore(Input{Locations: []string{"Maadi", "Zamalek", "New Cairo",
		"Heliopolis", "Nasr City", "Alexandria", "North Coast", "Giza"}})

	assert.Equal(t, few.Score, many.Score, "locations beyond the cap should not add points")
}

func TestComputeScore_ComponentsNeverExceedTheirCaps(t *testing.T) {
	for _, band := range budgetBands {
		assert.LessOrEqual(t, band.points, int32(maxBudgetPoints), "band floor %d", band.floor)
	}
	assert.LessOrEqual(t, budgetPoints(1<<50), int32(maxBudgetPoints))

	for _, intent := range []domain.BuyingIntent{
		domain.IntentCash, domain.IntentInstallment, domain.IntentMortgage, domain.IntentUnspecified,
	} {
		assert.LessOrEqual(t, intentPoints(intent), int32(maxIntentPoints), "intent %s", intent)
	}

	wide := Input{
		Locations: []string{"Maadi", "Zamalek", "New Cairo", "Heliopolis",
			"Nasr City", "Alexandria", "North Coast", "Giza"},
		PropertyTypes: []domain.PropertyType{
			domain.PropertyTypeApartment, domain.PropertyTypeVilla,
			domain.PropertyTypeTownhouse, domain.PropertyTypeDuplex,
			domain.PropertyTypeCommercial,
		},
	}
	assert.Equal(t, int32(maxBreadthPoints), breadthPoints(wide))
}

func TestComputeScore_DuplicateSelectionsCountOnce(t *testing.T) {
	single := ComputeScore(Input{Locations: []string{"New Cairo"}})
	duplicated := ComputeScore(Input{Locations: []string{"New Cairo", "new cairo", "التجمع الخامس"}})

	assert.Equal(t, single.Score, duplicated.Score)
}

func TestComputeScore_IntentRanking(t *testing.T) {
	cash := ComputeScore(Input{BuyingIntent: domain.IntentCash})
	mortgage := ComputeScore(Input{BuyingIntent: domain.IntentMortgage})
	installment := ComputeScore(Input{BuyingIntent: domain.IntentInstallment})
	unset := ComputeScore(Input{})

	assert.Greater(t, cash.Score, mortgage.Score)
	assert.Equal(t, mortgage.Score, installment.Score)
	assert.Greater(t, mortgage.Score, unset.Score)
}

func TestTierForScore_Thresholds(t *testing.T) {
	cases := []struct {
		score int32
		tier  domain.ScoreTier
	}{
		{0, domain.TierCold},
		{39, domain.TierCold},
		{40, domain.TierWarm},
		{69, domain.TierWarm},
		{70, domain.TierHot},
		{100, domain.TierHot},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierForScore(tc.score), "score %d", tc.score)
	}
}
