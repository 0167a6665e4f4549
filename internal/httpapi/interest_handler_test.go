package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead_gen/internal/lib/metrics"
	"lead_gen/internal/services/interest"
	"lead_gen/internal/services/matching"
)

// MockInterestService
type MockInterestService struct {
	ExpressInterestFunc func(ctx context.Context, buyerID, propertyID uuid.UUID, confirmed bool) (interest.Result, error)
}

func (m *MockInterestService) ExpressInterest(ctx context.Context, buyerID, propertyID uuid.UUID, confirmed bool) (interest.Result, error) {
	if m.ExpressInterestFunc != nil {
		return m.ExpressInterestFunc(ctx, buyerID, propertyID, confirmed)
	}
	return interest.Result{}, nil
}

// MockVerifier
type MockVerifier struct {
	buyerID uuid.UUID
}

func (m *MockVerifier) VerifyToken(token string) (uuid.UUID, error) {
	if token != "valid" {
		return uuid.Nil, errors.New("invalid token")
	}
	return m.buyerID, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRouter(svc InterestService, verifier TokenVerifier) http.Handler {
	log := testLogger()
	return NewRouter(Handlers{
		Auth:     NewAuthHandler(log, nil),
		Buyer:    NewBuyerHandler(log, nil),
		Property: NewPropertyHandler(log, nil, nil, ""),
		Interest: NewInterestHandler(log, svc),
		Lead:     NewLeadHandler(log, nil),
	}, verifier, metrics.NewFunnelMetrics(log))
}

func postInterest(t *testing.T, router http.Handler, propertyID uuid.UUID, body map[string]any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/"+propertyID.String()+"/interest", bytes.NewReader(raw))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInterestEndpoint_RequiresAuth(t *testing.T) {
	router := newTestRouter(&MockInterestService{}, &MockVerifier{buyerID: uuid.New()})

	rec := postInterest(t, router, uuid.New(), map[string]any{"confirmed": false}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInterestEndpoint_CreatedLead(t *testing.T) {
	buyerID := uuid.New()
	propertyID := uuid.New()
	leadID := uuid.New()

	svc := &MockInterestService{
		ExpressInterestFunc: func(ctx context.Context, gotBuyer, gotProperty uuid.UUID, confirmed bool) (interest.Result, error) {
			assert.Equal(t, buyerID, gotBuyer)
			assert.Equal(t, propertyID, gotProperty)
			assert.False(t, confirmed)
			return interest.Result{
				State:  interest.StateDone,
				Match:  matching.Result{Matches: true},
				LeadID: leadID,
			}, nil
		},
	}
	router := newTestRouter(svc, &MockVerifier{buyerID: buyerID})

	rec := postInterest(t, router, propertyID, map[string]any{"confirmed": false}, map[string]string{
		"Authorization": "Bearer valid",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp interestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(interest.StateDone), resp.State)
	assert.Equal(t, leadID.String(), resp.LeadID)
	assert.True(t, resp.Matched)
	assert.Empty(t, resp.Reasons)
}

func TestInterestEndpoint_WarningCarriesLocalizedReasons(t *testing.T) {
	buyerID := uuid.New()

	svc := &MockInterestService{
		ExpressInterestFunc: func(ctx context.Context, gotBuyer, gotProperty uuid.UUID, confirmed bool) (interest.Result, error) {
			return interest.Result{
				State: interest.StateWarningShown,
				Match: matching.Result{
					Matches: false,
					Reasons: []matching.ReasonCode{matching.ReasonBudgetExceeded, matching.ReasonTypeMismatch},
				},
			}, nil
		},
	}
	router := newTestRouter(svc, &MockVerifier{buyerID: buyerID})

	rec := postInterest(t, router, uuid.New(), map[string]any{"confirmed": false}, map[string]string{
		"Authorization":   "Bearer valid",
		"Accept-Language": "ar-EG",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp interestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(interest.StateWarningShown), resp.State)
	assert.Empty(t, resp.LeadID)
	require.Len(t, resp.Reasons, 2)
	assert.Equal(t, "budgetExceeded", resp.Reasons[0].Code)
	assert.Equal(t, "typeMismatch", resp.Reasons[1].Code)
	for _, reason := range resp.Reasons {
		assert.NotEmpty(t, reason.Message)
		assert.NotEqual(t, reason.Code, reason.Message, "message must be localized text, not the raw code")
	}
}

func TestInterestEndpoint_DuplicateIsConflict(t *testing.T) {
	svc := &MockInterestService{
		ExpressInterestFunc: func(ctx context.Context, gotBuyer, gotProperty uuid.UUID, confirmed bool) (interest.Result, error) {
			return interest.Result{State: interest.StateFailed}, interest.ErrAlreadyInterested
		},
	}
	router := newTestRouter(svc, &MockVerifier{buyerID: uuid.New()})

	rec := postInterest(t, router, uuid.New(), map[string]any{"confirmed": true}, map[string]string{
		"Authorization": "Bearer valid",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInterestEndpoint_BadPropertyID(t *testing.T) {
	router := newTestRouter(&MockInterestService{}, &MockVerifier{buyerID: uuid.New()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/not-a-uuid/interest", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
