package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/metrics"
	"lead_gen/internal/services/property"
)

// MockPropertyService
type MockPropertyService struct {
	UpdatePropertyFunc func(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) (domain.Property, error)
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, p domain.Property) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (m *MockPropertyService) GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	return domain.Property{}, nil
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) (domain.Property, error) {
	if m.UpdatePropertyFunc != nil {
		return m.UpdatePropertyFunc(ctx, propertyID, update)
	}
	return domain.Property{}, nil
}

func (m *MockPropertyService) ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error) {
	return &domain.PaginatedResult[domain.Property]{}, nil
}

func newPropertyTestRouter(svc PropertyService) http.Handler {
	log := testLogger()
	return NewRouter(Handlers{
		Auth:     NewAuthHandler(log, nil),
		Buyer:    NewBuyerHandler(log, nil),
		Property: NewPropertyHandler(log, svc, nil, ""),
		Interest: NewInterestHandler(log, nil),
		Lead:     NewLeadHandler(log, nil),
	}, &MockVerifier{buyerID: uuid.New()}, metrics.NewFunnelMetrics(log))
}

func putProperty(t *testing.T, router http.Handler, id string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/properties/"+id, bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer valid")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdatePropertyEndpoint_AppliesPartialEdit(t *testing.T) {
	propertyID := uuid.New()

	var captured domain.PropertyFilter
	svc := &MockPropertyService{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyFilter) (domain.Property, error) {
			assert.Equal(t, propertyID, id)
			captured = update
			return domain.Property{
				ID:           propertyID,
				Title:        "3BR apartment",
				Price:        5_200_000,
				Location:     "New Cairo",
				PropertyType: domain.PropertyTypeApartment,
				Status:       domain.PropertyStatusPublished,
			}, nil
		},
	}
	router := newPropertyTestRouter(svc)

	rec := putProperty(t, router, propertyID.String(), map[string]any{
		"price":         5_200_000,
		"property_type": "apartment",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, captured.Price)
	assert.Equal(t, int64(5_200_000), *captured.Price)
	require.NotNil(t, captured.PropertyType)
	assert.Equal(t, domain.PropertyTypeApartment, *captured.PropertyType)
	assert.Nil(t, captured.Title)
	assert.Nil(t, captured.Location)

	var resp propertyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, propertyID.String(), resp.ID)
	assert.Equal(t, int64(5_200_000), resp.Price)
}

func TestUpdatePropertyEndpoint_ValidationRejects(t *testing.T) {
	router := newPropertyTestRouter(&MockPropertyService{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyFilter) (domain.Property, error) {
			t.Fatal("invalid payload must not reach the service")
			return domain.Property{}, nil
		},
	})

	cases := []struct {
		name string
		body map[string]any
	}{
		{"non-positive price", map[string]any{"price": 0}},
		{"unknown property type", map[string]any{"property_type": "castle"}},
		{"empty title", map[string]any{"title": ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := putProperty(t, router, uuid.NewString(), tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdatePropertyEndpoint_NotFound(t *testing.T) {
	router := newPropertyTestRouter(&MockPropertyService{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyFilter) (domain.Property, error) {
			return domain.Property{}, property.ErrPropertyNotFound
		},
	})

	rec := putProperty(t, router, uuid.NewString(), map[string]any{"price": 1_000_000})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePropertyEndpoint_RequiresAuth(t *testing.T) {
	router := newPropertyTestRouter(&MockPropertyService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/properties/"+uuid.NewString(), bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
