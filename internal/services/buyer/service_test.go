package buyer

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/metrics"
	"lead_gen/internal/repository"
	"lead_gen/internal/services/scoring"
)

// MockBuyerRepository
type MockBuyerRepository struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Buyer, error)
	UpdateBuyerFunc func(ctx context.Context, buyerID uuid.UUID, update domain.BuyerFilter) error
}

func (m *MockBuyerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Buyer{}, nil
}

func (m *MockBuyerRepository) UpdateBuyer(ctx context.Context, buyerID uuid.UUID, update domain.BuyerFilter) error {
	if m.UpdateBuyerFunc != nil {
		return m.UpdateBuyerFunc(ctx, buyerID, update)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestUpdatePreferences_RescoresBuyer(t *testing.T) {
	buyerID := uuid.New()

	stored := domain.Buyer{
		ID:        buyerID,
		Name:      "Sara Adel",
		Score:     0,
		ScoreTier: domain.TierCold,
	}

	var captured domain.BuyerFilter
	repo := &MockBuyerRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
			return stored, nil
		},
		UpdateBuyerFunc: func(ctx context.Context, id uuid.UUID, update domain.BuyerFilter) error {
			captured = update
			return nil
		},
	}

	funnel := metrics.NewFunnelMetrics(testLogger())
	svc := New(testLogger(), repo, funnel)

	budget := int64(5_000_000)
	locations := []string{"New Cairo"}
	types := []domain.PropertyType{domain.PropertyTypeApartment}
	intent := domain.IntentCash

	_, err := svc.UpdatePreferences(context.Background(), buyerID, PreferencesUpdate{
		Budget:        &budget,
		Locations:     &locations,
		PropertyTypes: &types,
		BuyingIntent:  &intent,
	})
	require.NoError(t, err)

	require.NotNil(t, captured.Score)
	require.NotNil(t, captured.ScoreTier)

	want := scoring.ComputeScore(scoring.Input{
		Budget:        budget,
		Locations:     locations,
		PropertyTypes: types,
		BuyingIntent:  intent,
	})
	assert.Equal(t, want.Score, *captured.Score)
	assert.Equal(t, want.Tier, *captured.ScoreTier)
	assert.Equal(t, domain.TierHot, *captured.ScoreTier)

	assert.Equal(t, int64(1), funnel.GetStats().ScoresComputedTotal)
}

// A partial edit is scored against the merged profile, not the edit alone.
func TestUpdatePreferences_PartialEditScoresMergedProfile(t *testing.T) {
	buyerID := uuid.New()

	stored := domain.Buyer{
		ID:            buyerID,
		Budget:        5_000_000,
		Locations:     []string{"New Cairo"},
		PropertyTypes: []domain.PropertyType{domain.PropertyTypeApartment},
		BuyingIntent:  domain.IntentCash,
		Score:         80,
		ScoreTier:     domain.TierHot,
	}

	var captured domain.BuyerFilter
	repo := &MockBuyerRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
			return stored, nil
		},
		UpdateBuyerFunc: func(ctx context.Context, id uuid.UUID, update domain.BuyerFilter) error {
			captured = update
			return nil
		},
	}

	svc := New(testLogger(), repo, metrics.NewFunnelMetrics(testLogger()))

	// Only the budget drops; intent and preferences stay as stored.
	budget := int64(500_000)
	_, err := svc.UpdatePreferences(context.Background(), buyerID, PreferencesUpdate{Budget: &budget})
	require.NoError(t, err)

	want := scoring.ComputeScore(scoring.Input{
		Budget:        budget,
		Locations:     stored.Locations,
		PropertyTypes: stored.PropertyTypes,
		BuyingIntent:  stored.BuyingIntent,
	})
	require.NotNil(t, captured.Score)
	assert.Equal(t, want.Score, *captured.Score)
	assert.Less(t, *captured.Score, stored.Score, "lower budget must lower the score")

	// Untouched fields are not written back.
	assert.Nil(t, captured.Locations)
	assert.Nil(t, captured.PropertyTypes)
	assert.Nil(t, captured.BuyingIntent)
}

func TestUpdatePreferences_BuyerNotFound(t *testing.T) {
	repo := &MockBuyerRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
			return domain.Buyer{}, repository.ErrBuyerNotFound
		},
	}

	svc := New(testLogger(), repo, metrics.NewFunnelMetrics(testLogger()))

	budget := int64(1_000_000)
	_, err := svc.UpdatePreferences(context.Background(), uuid.New(), PreferencesUpdate{Budget: &budget})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuyerNotFound)
}

func TestGetBuyer_NotFoundMapsSentinel(t *testing.T) {
	repo := &MockBuyerRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
			return domain.Buyer{}, repository.ErrBuyerNotFound
		},
	}

	svc := New(testLogger(), repo, metrics.NewFunnelMetrics(testLogger()))

	_, err := svc.GetBuyer(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBuyerNotFound)
}
