package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"lead_gen/internal/lib/i18n"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/services/buyer"
	"lead_gen/internal/services/interest"
	"lead_gen/internal/services/matching"
	"lead_gen/internal/services/property"
)

// InterestService runs the interest flow.
type InterestService interface {
	ExpressInterest(ctx context.Context, buyerID, propertyID uuid.UUID, confirmed bool) (interest.Result, error)
}

type InterestHandler struct {
	log     *slog.Logger
	service InterestService
}

func NewInterestHandler(log *slog.Logger, service InterestService) *InterestHandler {
	return &InterestHandler{log: log, service: service}
}

type interestRequest struct {
	// Confirmed means the buyer saw the mismatch warning and wants the lead
	// anyway.
	Confirmed bool `json:"confirmed"`
}

type mismatchReason struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type interestResponse struct {
	State   string           `json:"state"`
	LeadID  string           `json:"lead_id,omitempty"`
	Matched bool             `json:"matched"`
	Reasons []mismatchReason `json:"reasons,omitempty"`
}

// Express handles POST /properties/{id}/interest. A mismatch without
// confirmation comes back 200 with the localized warning; a created lead is
// 201; a duplicate is 409.
func (h *InterestHandler) Express(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyerIDFromContext(r.Context())
	if !ok {
		respondErr(w, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, errors.New("id is not in its proper form"))
		return
	}

	var req interestRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	lang := i18n.ParseLang(r.Header.Get("Accept-Language"))

	result, err := h.service.ExpressInterest(r.Context(), buyerID, propertyID, req.Confirmed)
	if err != nil {
		switch {
		case errors.Is(err, interest.ErrAlreadyInterested):
			respondErr(w, http.StatusConflict, errors.New("interest already recorded for this property"))
		case errors.Is(err, buyer.ErrBuyerNotFound):
			respondErr(w, http.StatusNotFound, errors.New("buyer not found"))
		case errors.Is(err, property.ErrPropertyNotFound):
			respondErr(w, http.StatusNotFound, errors.New("property not found"))
		default:
			h.log.Error("express interest failed", sl.Err(err))
			respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	resp := interestResponse{
		State:   string(result.State),
		Matched: result.Match.Matches,
		Reasons: lo.Map(result.Match.Reasons, func(code matching.ReasonCode, _ int) mismatchReason {
			return mismatchReason{
				Code:    string(code),
				Message: i18n.ReasonMessage(code, lang),
			}
		}),
	}

	if result.State == interest.StateDone {
		resp.LeadID = result.LeadID.String()
		respond(w, http.StatusCreated, resp)
		return
	}

	respond(w, http.StatusOK, resp)
}
