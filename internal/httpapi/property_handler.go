package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lead_gen/internal/domain"
	"lead_gen/internal/lib/jsonld"
	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/services/property"
)

// PropertyService is the listing surface.
type PropertyService interface {
	CreateProperty(ctx context.Context, p domain.Property) (uuid.UUID, error)
	GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) (domain.Property, error)
	ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error)
}

type PropertyHandler struct {
	log     *slog.Logger
	service PropertyService
	markup  *jsonld.Generator
	baseURL string
}

func NewPropertyHandler(log *slog.Logger, service PropertyService, markup *jsonld.Generator, baseURL string) *PropertyHandler {
	return &PropertyHandler{
		log:     log,
		service: service,
		markup:  markup,
		baseURL: baseURL,
	}
}

type createPropertyRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	DeveloperID  string `json:"developer_id"`
	ProjectID    string `json:"project_id"`
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" || req.Price <= 0 || req.Location == "" {
		respondErr(w, http.StatusBadRequest, errors.New("title, price and location are required"))
		return
	}
	propType := domain.ParsePropertyType(req.PropertyType)
	if propType == domain.PropertyTypeUnspecified {
		respondErr(w, http.StatusBadRequest, errors.New("unknown property type"))
		return
	}

	p := domain.Property{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Location:     req.Location,
		PropertyType: propType,
	}
	if req.DeveloperID != "" {
		id, err := uuid.Parse(req.DeveloperID)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("developer_id is not a valid id"))
			return
		}
		p.DeveloperID = &id
	}
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("project_id is not a valid id"))
			return
		}
		p.ProjectID = &id
	}

	id, err := h.service.CreateProperty(r.Context(), p)
	if err != nil {
		h.log.Error("create property failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusCreated, map[string]string{"property_id": id.String()})
}

type updatePropertyRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Price        *int64  `json:"price"`
	Location     *string `json:"location"`
	PropertyType *string `json:"property_type"`
	Status       *string `json:"status"`
}

// Update applies a partial edit to a listing. Nil fields are left untouched.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, errors.New("id is not in its proper form"))
		return
	}

	var req updatePropertyRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	update := domain.PropertyFilter{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Title != nil && *req.Title == "" {
		respondErr(w, http.StatusBadRequest, errors.New("title must not be empty"))
		return
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			respondErr(w, http.StatusBadRequest, errors.New("price must be positive"))
			return
		}
		update.Price = req.Price
	}
	if req.PropertyType != nil {
		propType := domain.ParsePropertyType(*req.PropertyType)
		if propType == domain.PropertyTypeUnspecified {
			respondErr(w, http.StatusBadRequest, errors.New("unknown property type"))
			return
		}
		update.PropertyType = &propType
	}
	if req.Status != nil {
		status := domain.PropertyStatus(*req.Status)
		update.Status = &status
	}

	p, err := h.service.UpdateProperty(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			respondErr(w, http.StatusNotFound, errors.New("property not found"))
			return
		}
		h.log.Error("update property failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toPropertyResponse(p))
}

type propertyDetailResponse struct {
	propertyResponse
	JSONLD json.RawMessage `json:"json_ld,omitempty"`
}

// GetByID returns the listing with its schema.org markup for the detail page.
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, errors.New("id is not in its proper form"))
		return
	}

	p, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			respondErr(w, http.StatusNotFound, errors.New("property not found"))
			return
		}
		h.log.Error("get property failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	resp := propertyDetailResponse{propertyResponse: toPropertyResponse(p)}
	if markup, err := h.markup.GeneratePropertyJSONLDBytes(p, h.baseURL); err == nil {
		resp.JSONLD = markup
	}

	respond(w, http.StatusOK, resp)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.PropertyFilter{
		Pagination: paginationFromQuery(r),
	}

	q := r.URL.Query()
	if v := q.Get("location"); v != "" {
		normalized := domain.NormalizeLocation(v)
		filter.Location = &normalized
	}
	if v := q.Get("property_type"); v != "" {
		t := domain.ParsePropertyType(v)
		if t == domain.PropertyTypeUnspecified {
			respondErr(w, http.StatusBadRequest, errors.New("unknown property type"))
			return
		}
		filter.PropertyType = &t
	}
	if v := q.Get("status"); v != "" {
		status := domain.PropertyStatus(v)
		filter.Status = &status
	} else {
		published := domain.PropertyStatusPublished
		filter.Status = &published
	}
	if v := q.Get("min_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("min_price must be an integer"))
			return
		}
		filter.MinPrice = &price
	}
	if v := q.Get("max_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondErr(w, http.StatusBadRequest, errors.New("max_price must be an integer"))
			return
		}
		filter.MaxPrice = &price
	}

	page, err := h.service.ListProperties(r.Context(), filter)
	if err != nil {
		h.log.Error("list properties failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, toPageResponse(page, toPropertyResponse))
}

func paginationFromQuery(r *http.Request) *domain.PaginationParams {
	q := r.URL.Query()
	params := &domain.PaginationParams{
		PageToken:      q.Get("page_token"),
		OrderDirection: domain.NormalizeOrderDirection(q.Get("order")),
	}
	if v := q.Get("page_size"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 32); err == nil {
			params.PageSize = int32(size)
		}
	}
	params.PageSize = domain.NormalizePageSize(params.PageSize)
	return params
}
