package buyer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/lib/metrics"
	"lead_gen/internal/repository"
	"lead_gen/internal/services/scoring"
)

type BuyerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Buyer, error)
	UpdateBuyer(ctx context.Context, buyerID uuid.UUID, update domain.BuyerFilter) error
}

type Service struct {
	log    *slog.Logger
	repo   BuyerRepository
	funnel *metrics.FunnelMetrics
}

var (
	ErrBuyerNotFound = errors.New("buyer not found")
)

func New(log *slog.Logger, repo BuyerRepository, funnel *metrics.FunnelMetrics) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		funnel: funnel,
	}
}

// GetBuyer fetches a buyer profile.
func (s *Service) GetBuyer(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
	const op = "buyer.Service.GetBuyer"

	buyer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			s.log.Warn("buyer not found", slog.String("buyer_id", id.String()))
			return domain.Buyer{}, fmt.Errorf("%s: %w", op, ErrBuyerNotFound)
		}
		s.log.Error("failed to get buyer", sl.Err(err))
		return domain.Buyer{}, fmt.Errorf("%s: %w", op, err)
	}

	return buyer, nil
}

// PreferencesUpdate is registration step 2 or a later profile edit. Nil
// fields are left untouched.
type PreferencesUpdate struct {
	Budget        *int64
	Locations     *[]string
	PropertyTypes *[]domain.PropertyType
	BuyingIntent  *domain.BuyingIntent
}

// UpdatePreferences stores new declared preferences and rescores the buyer
// in the same update, so score and tier can never drift apart or go stale
// after an edit.
func (s *Service) UpdatePreferences(ctx context.Context, buyerID uuid.UUID, update PreferencesUpdate) (domain.Buyer, error) {
	const op = "buyer.Service.UpdatePreferences"
	log := s.log.With(slog.String("op", op), slog.String("buyer_id", buyerID.String()))

	current, err := s.repo.GetByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			return domain.Buyer{}, fmt.Errorf("%s: %w", op, ErrBuyerNotFound)
		}
		return domain.Buyer{}, fmt.Errorf("%s: %w", op, err)
	}

	// Apply the edit over the current profile to score the effective state.
	next := current
	if update.Budget != nil {
		next.Budget = *update.Budget
	}
	if update.Locations != nil {
		next.Locations = *update.Locations
	}
	if update.PropertyTypes != nil {
		next.PropertyTypes = *update.PropertyTypes
	}
	if update.BuyingIntent != nil {
		next.BuyingIntent = *update.BuyingIntent
	}

	result := scoring.ComputeScore(scoring.Input{
		Budget:        next.Budget,
		Locations:     next.Locations,
		PropertyTypes: next.PropertyTypes,
		BuyingIntent:  next.BuyingIntent,
	})
	if s.funnel != nil {
		s.funnel.RecordScoreComputed()
	}

	err = s.repo.UpdateBuyer(ctx, buyerID, domain.BuyerFilter{
		Budget:        update.Budget,
		Locations:     update.Locations,
		PropertyTypes: update.PropertyTypes,
		BuyingIntent:  update.BuyingIntent,
		Score:         &result.Score,
		ScoreTier:     &result.Tier,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBuyerNotFound) {
			return domain.Buyer{}, fmt.Errorf("%s: %w", op, ErrBuyerNotFound)
		}
		log.Error("failed to update buyer", sl.Err(err))
		return domain.Buyer{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("buyer rescored",
		slog.Int("score", int(result.Score)),
		slog.String("tier", result.Tier.String()),
	)

	updated, err := s.repo.GetByID(ctx, buyerID)
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("%s: failed to fetch updated buyer: %w", op, err)
	}

	return updated, nil
}
