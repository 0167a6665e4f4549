package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/services/lead"
)

// LeadService is the marketer triage surface.
type LeadService interface {
	GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	UpdateStatus(ctx context.Context, leadID uuid.UUID, next domain.LeadStatus) (domain.Lead, error)
	ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error)
}

type LeadHandler struct {
	log     *slog.Logger
	service LeadService
}

func NewLeadHandler(log *slog.Logger, service LeadService) *LeadHandler {
	return &LeadHandler{log: log, service: service}
}

// List supports the triage screen: filter by status, tier and override mark,
// newest first by default.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.LeadFilter{
		Pagination: paginationFromQuery(r),
	}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := domain.ParseLeadStatus(v)
		if status == domain.LeadStatusUnspecified {
			respondErr(w, http.StatusBadRequest, errors.New("unknown lead status"))
			return
		}
		filter.Status = &status
	}
	if v := q.Get("score_tier"); v != "" {
		tier := domain.ScoreTier(v)
		filter.ScoreTier = &tier
	}
	if v := q.Get("overridden"); v != "" {
		overridden, err := strconv.ParseBool(v)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("overridden must be a boolean"))
			return
		}
		filter.Overridden = &overridden
	}
	if v := q.Get("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("property_id is not a valid id"))
			return
		}
		filter.PropertyID = &id
	}

	page, err := h.service.ListLeads(r.Context(), filter)
	if err != nil {
		h.log.Error("list leads failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toPageResponse(page, toLeadResponse))
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, errors.New("id is not in its proper form"))
		return
	}

	l, err := h.service.GetLead(r.Context(), id)
	if err != nil {
		if errors.Is(err, lead.ErrLeadNotFound) {
			respondErr(w, http.StatusNotFound, errors.New("lead not found"))
			return
		}
		h.log.Error("get lead failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toLeadResponse(l))
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, errors.New("id is not in its proper form"))
		return
	}

	var req updateLeadStatusRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}
	status := domain.ParseLeadStatus(req.Status)
	if status == domain.LeadStatusUnspecified {
		respondErr(w, http.StatusBadRequest, errors.New("unknown lead status"))
		return
	}

	l, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, lead.ErrLeadNotFound):
			respondErr(w, http.StatusNotFound, errors.New("lead not found"))
		case errors.Is(err, lead.ErrInvalidTransition):
			respondErr(w, http.StatusConflict, errors.New("status transition not allowed"))
		default:
			h.log.Error("update lead status failed", sl.Err(err))
			respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	respond(w, http.StatusOK, toLeadResponse(l))
}
