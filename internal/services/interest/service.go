package interest

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
	"lead_gen/internal/services/matching"
)

// State is where one interest submission ended up. The flow is
// Idle -> Evaluating -> (Submitting | WarningShown) -> (Done | Failed).
// WarningShown and Failed hand control back to the buyer: the first awaits
// an explicit confirmation, the second is retryable from the top.
type State string

const (
	StateWarningShown State = "WARNING_SHOWN"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
)

type BuyerProvider interface {
	GetBuyer(ctx context.Context, id uuid.UUID) (domain.Buyer, error)
}

type PropertyProvider interface {
	GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

type LeadRepository interface {
	CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error)
	ExistsForBuyerProperty(ctx context.Context, buyerID, propertyID uuid.UUID) (bool, error)
}

type Service struct {
	log        *slog.Logger
	buyers     BuyerProvider
	properties PropertyProvider
	leads      LeadRepository
	engine     *matching.Engine
	funnel     *metrics.FunnelMetrics
}

var (
	ErrAlreadyInterested = errors.New("buyer already has a lead on this property")
)

func New(
	log *slog.Logger,
	buyers BuyerProvider,
	properties PropertyProvider,
	leads LeadRepository,
	engine *matching.Engine,
	funnel *metrics.FunnelMetrics,
) *Service {
	return &Service{
		log:        log,
		buyers:     buyers,
		properties: properties,
		leads:      leads,
		engine:     engine,
		funnel:     funnel,
	}
}

// Result of one ExpressInterest call. LeadID is set only in StateDone.
// Match is always populated so the caller can render reasons or reuse the
// evaluation on a retry.
type Result struct {
	State  State
	Match  matching.Result
	LeadID uuid.UUID
}

// ExpressInterest runs the interest flow for one buyer and property.
//
// A mismatch without confirmation stops at WarningShown and creates
// nothing. With confirmed set, the mismatch is advisory only: the lead is
// created with exactly the same payload as a clean match, plus the
// Overridden mark. Persistence failures return StateFailed with the error;
// the caller may retry and reuse the returned evaluation since the inputs
// have not changed.
func (s *Service) ExpressInterest(ctx context.Context, buyerID, propertyID uuid.UUID, confirmed bool) (Result, error) {
	const op = "interest.Service.ExpressInterest"
	log := s.log.With(
		slog.String("op", op),
		slog.String("buyer_id", buyerID.String()),
		slog.String("property_id", propertyID.String()),
	)

	exists, err := s.leads.ExistsForBuyerProperty(ctx, buyerID, propertyID)
	if err != nil {
		return Result{State: StateFailed}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		log.Warn("duplicate interest blocked")
		return Result{State: StateFailed}, fmt.Errorf("%s: %w", op, ErrAlreadyInterested)
	}

	buyer, err := s.buyers.GetBuyer(ctx, buyerID)
	if err != nil {
		return Result{State: StateFailed}, fmt.Errorf("%s: %w", op, err)
	}
	property, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return Result{State: StateFailed}, fmt.Errorf("%s: %w", op, err)
	}

	match := s.engine.Evaluate(
		matching.BuyerInput{
			Budget:        buyer.Budget,
			Locations:     buyer.Locations,
			PropertyTypes: buyer.PropertyTypes,
		},
		matching.PropertyInput{
			Price:        property.Price,
			Location:     property.Location,
			PropertyType: property.PropertyType,
		},
	)
	if s.funnel != nil {
		s.funnel.RecordEvaluation(match.Matches)
	}

	if !match.Matches && !confirmed {
		if s.funnel != nil {
			s.funnel.RecordWarningShown()
		}
		log.Info("mismatch warning shown", slog.Int("reasons", len(match.Reasons)))
		return Result{State: StateWarningShown, Match: match}, nil
	}

	overridden := !match.Matches
	if overridden && s.funnel != nil {
		s.funnel.RecordOverride()
	}

	leadID, err := s.leads.CreateLead(ctx, buildLead(buyer, property, overridden))
	if err != nil {
		if errors.Is(err, repository.ErrLeadAlreadyExists) {
			// Lost the race against a concurrent submission; the unique
			// index is the authority, the earlier existence check is not.
			log.Warn("duplicate interest blocked by constraint")
			return Result{State: StateFailed, Match: match}, fmt.Errorf("%s: %w", op, ErrAlreadyInterested)
		}
		if s.funnel != nil {
			s.funnel.RecordLeadFailure()
		}
		log.Error("failed to create lead", sl.Err(err))
		return Result{State: StateFailed, Match: match}, fmt.Errorf("%s: %w", op, err)
	}

	if s.funnel != nil {
		s.funnel.RecordLeadCreated()
	}
	log.Info("lead created",
		slog.String("lead_id", leadID.String()),
		slog.Bool("overridden", overridden),
		slog.String("tier", buyer.ScoreTier.String()),
	)

	return Result{State: StateDone, Match: match, LeadID: leadID}, nil
}

// buildLead snapshots the buyer's qualification at the moment of interest.
// The override path and the matched path produce identical payloads apart
// from the Overridden mark.
func buildLead(buyer domain.Buyer, property domain.Property, overridden bool) domain.Lead {
	return domain.Lead{
		BuyerID:       buyer.ID,
		PropertyID:    property.ID,
		BuyerName:     buyer.Name,
		BuyerPhone:    buyer.Phone,
		BuyerEmail:    buyer.Email,
		Budget:        buyer.Budget,
		Locations:     buyer.Locations,
		PropertyTypes: buyer.PropertyTypes,
		Score:         buyer.Score,
		ScoreTier:     buyer.ScoreTier,
		Overridden:    overridden,
		Status:        domain.LeadStatusNew,
	}
}
