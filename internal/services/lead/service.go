package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/repository"
)

type LeadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	UpdateStatus(ctx context.Context, leadID uuid.UUID, status domain.LeadStatus) error
	ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error)
}

// Service is the marketer-facing triage surface. It never touches the
// snapshot fields: those are frozen at interest time.
type Service struct {
	log  *slog.Logger
	repo LeadRepository
}

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidTransition = errors.New("invalid lead status transition")
)

func New(log *slog.Logger, repo LeadRepository) *Service {
	return &Service{log: log, repo: repo}
}

// GetLead fetches a lead.
func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	const op = "lead.Service.GetLead"

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			s.log.Warn("lead not found", slog.String("lead_id", id.String()))
			return domain.Lead{}, fmt.Errorf("%s: %w", op, ErrLeadNotFound)
		}
		s.log.Error("failed to get lead", sl.Err(err))
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// UpdateStatus moves a lead through the marketer workflow, enforcing the
// New -> Contacted -> Deal|Lost transitions.
func (s *Service) UpdateStatus(ctx context.Context, leadID uuid.UUID, next domain.LeadStatus) (domain.Lead, error) {
	const op = "lead.Service.UpdateStatus"
	log := s.log.With(slog.String("op", op), slog.String("lead_id", leadID.String()))

	current, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return domain.Lead{}, fmt.Errorf("%s: %w", op, ErrLeadNotFound)
		}
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	if !current.Status.CanTransitionTo(next) {
		log.Warn("rejected status transition",
			slog.String("from", current.Status.String()),
			slog.String("to", next.String()),
		)
		return domain.Lead{}, fmt.Errorf("%s: %w", op, ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, leadID, next); err != nil {
		log.Error("failed to update lead status", sl.Err(err))
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s: failed to fetch updated lead: %w", op, err)
	}

	return updated, nil
}

// ListLeads returns leads for the triage screen.
func (s *Service) ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
	const op = "lead.Service.ListLeads"

	result, err := s.repo.ListLeads(ctx, filter)
	if err != nil {
		s.log.Error("failed to list leads", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
