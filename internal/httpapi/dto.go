package httpapi

import (
	"time"

	"github.com/samber/lo"

	"lead_gen/internal/domain"
)

type buyerResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Budget        int64    `json:"budget"`
	Locations     []string `json:"locations"`
	PropertyTypes []string `json:"property_types"`
	BuyingIntent  string   `json:"buying_intent,omitempty"`
	Score         int32    `json:"score"`
	ScoreTier     string   `json:"score_tier"`
	CreatedAt     string   `json:"created_at"`
}

func toBuyerResponse(b domain.Buyer) buyerResponse {
	return buyerResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Budget:    b.Budget,
		Locations: b.Locations,
		PropertyTypes: lo.Map(b.PropertyTypes, func(t domain.PropertyType, _ int) string {
			return t.String()
		}),
		BuyingIntent: b.BuyingIntent.String(),
		Score:        b.Score,
		ScoreTier:    b.ScoreTier.String(),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}

type propertyResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	Status       string `json:"status"`
	DeveloperID  string `json:"developer_id,omitempty"`
	ProjectID    string `json:"project_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func toPropertyResponse(p domain.Property) propertyResponse {
	resp := propertyResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Location:     p.Location,
		PropertyType: p.PropertyType.String(),
		Status:       p.Status.String(),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.DeveloperID != nil {
		resp.DeveloperID = p.DeveloperID.String()
	}
	if p.ProjectID != nil {
		resp.ProjectID = p.ProjectID.String()
	}
	return resp
}

type leadResponse struct {
	ID            string   `json:"id"`
	BuyerID       string   `json:"buyer_id"`
	PropertyID    string   `json:"property_id"`
	BuyerName     string   `json:"buyer_name"`
	BuyerPhone    string   `json:"buyer_phone"`
	BuyerEmail    string   `json:"buyer_email"`
	Budget        int64    `json:"budget"`
	Locations     []string `json:"locations"`
	PropertyTypes []string `json:"property_types"`
	Score         int32    `json:"score"`
	ScoreTier     string   `json:"score_tier"`
	Overridden    bool     `json:"overridden"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
}

func toLeadResponse(l domain.Lead) leadResponse {
	return leadResponse{
		ID:         l.ID.String(),
		BuyerID:    l.BuyerID.String(),
		PropertyID: l.PropertyID.String(),
		BuyerName:  l.BuyerName,
		BuyerPhone: l.BuyerPhone,
		BuyerEmail: l.BuyerEmail,
		Budget:     l.Budget,
		Locations:  l.Locations,
		PropertyTypes: lo.Map(l.PropertyTypes, func(t domain.PropertyType, _ int) string {
			return t.String()
		}),
		Score:      l.Score,
		ScoreTier:  l.ScoreTier.String(),
		Overridden: l.Overridden,
		Status:     l.Status.String(),
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

type pageResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

func toPageResponse[D, T any](page *domain.PaginatedResult[D], mapItem func(D) T) pageResponse[T] {
	return pageResponse[T]{
		Items:         lo.Map(page.Items, func(item D, _ int) T { return mapItem(item) }),
		NextPageToken: page.NextPageToken,
		HasMore:       page.HasMore,
	}
}
