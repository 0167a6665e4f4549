package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/services/buyer"
)

// BuyerService is the profile and preferences surface.
type BuyerService interface {
	GetBuyer(ctx context.Context, id uuid.UUID) (domain.Buyer, error)
	UpdatePreferences(ctx context.Context, buyerID uuid.UUID, update buyer.PreferencesUpdate) (domain.Buyer, error)
}

type BuyerHandler struct {
	log     *slog.Logger
	service BuyerService
}

func NewBuyerHandler(log *slog.Logger, service BuyerService) *BuyerHandler {
	return &BuyerHandler{log: log, service: service}
}

// Me returns the authenticated buyer's profile, score included.
func (h *BuyerHandler) Me(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyerIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	b, err := h.service.GetBuyer(r.Context(), buyerID)
	if err != nil {
		if errors.Is(err, buyer.ErrBuyerNotFound) {
			respondErr(w, http.StatusNotFound, errors.New("buyer not found"))
			return
		}
		h.log.Error("get buyer failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toBuyerResponse(b))
}

type preferencesRequest struct {
	Budget        *int64    `json:"budget"`
	Locations     *[]string `json:"locations"`
	PropertyTypes *[]string `json:"property_types"`
	BuyingIntent  *string   `json:"buying_intent"`
}

// UpdatePreferences is registration step 2 and later profile edits. The
// response carries the fresh score and tier.
func (h *BuyerHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyerIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	var req preferencesRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}
	if req.Budget != nil && *req.Budget < 0 {
		respondErr(w, http.StatusBadRequest, errors.New("budget must not be negative"))
		return
	}

	update := buyer.PreferencesUpdate{
		Budget:    req.Budget,
		Locations: req.Locations,
	}
	if req.PropertyTypes != nil {
		types := lo.Map(*req.PropertyTypes, func(s string, _ int) domain.PropertyType {
			return domain.ParsePropertyType(s)
		})
		types = lo.Filter(types, func(t domain.PropertyType, _ int) bool {
			return t != domain.PropertyTypeUnspecified
		})
		update.PropertyTypes = &types
	}
	if req.BuyingIntent != nil {
		intent := domain.ParseBuyingIntent(*req.BuyingIntent)
		update.BuyingIntent = &intent
	}

	b, err := h.service.UpdatePreferences(r.Context(), buyerID, update)
	if err != nil {
		if errors.Is(err, buyer.ErrBuyerNotFound) {
			respondErr(w, http.StatusNotFound, errors.New("buyer not found"))
			return
		}
		h.log.Error("update preferences failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toBuyerResponse(b))
}
