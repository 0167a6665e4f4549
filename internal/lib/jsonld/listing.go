package jsonld

import (
	"encoding/json"
	"fmt"
	"time"

	"lead_gen/internal/domain"
)

// Generator builds schema.org JSON-LD markup for property detail pages.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// RealEstateListing is the schema.org listing shape.
type RealEstateListing struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	ID           string `json:"@id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty"`
	DatePosted   string `json:"datePosted,omitempty"`
	DateModified string `json:"dateModified,omitempty"`

	Offers  *Offer         `json:"offers,omitempty"`
	Address *PostalAddress `json:"address,omitempty"`

	PropertyType string `json:"propertyType,omitempty"`
}

// Offer is the schema.org price offer.
type Offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price,omitempty"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability,omitempty"`
}

// PostalAddress is the schema.org address.
type PostalAddress struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// GeneratePropertyJSONLD builds the listing markup for one property.
func (g *Generator) GeneratePropertyJSONLD(property domain.Property, baseURL string) *RealEstateListing {
	listing := &RealEstateListing{
		Context:      "https://schema.org",
		Type:         g.mapPropertyType(property.PropertyType),
		ID:           fmt.Sprintf("%s/properties/%s", baseURL, property.ID.String()),
		Name:         property.Title,
		Description:  property.Description,
		URL:          fmt.Sprintf("%s/properties/%s", baseURL, property.ID.String()),
		DatePosted:   property.CreatedAt.Format(time.RFC3339),
		DateModified: property.UpdatedAt.Format(time.RFC3339),
		PropertyType: property.PropertyType.String(),
	}

	if property.Price > 0 {
		listing.Offers = &Offer{
			Type:          "Offer",
			Price:         property.Price,
			PriceCurrency: "EGP",
			Availability:  g.mapPropertyStatus(property.Status),
		}
	}

	listing.Address = &PostalAddress{
		Type:            "PostalAddress",
		AddressLocality: property.Location,
		AddressCountry:  "EG",
	}

	return listing
}

// GeneratePropertyJSONLDBytes renders the markup as indented JSON.
func (g *Generator) GeneratePropertyJSONLDBytes(property domain.Property, baseURL string) ([]byte, error) {
	listing := g.GeneratePropertyJSONLD(property, baseURL)

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON-LD: %w", err)
	}

	return data, nil
}

func (g *Generator) mapPropertyType(pt domain.PropertyType) string {
	switch pt {
	case domain.PropertyTypeApartment, domain.PropertyTypeDuplex:
		return "Apartment"
	case domain.PropertyTypeVilla, domain.PropertyTypeTownhouse:
		return "House"
	default:
		return "RealEstateListing"
	}
}

func (g *Generator) mapPropertyStatus(status domain.PropertyStatus) string {
	switch status {
	case domain.PropertyStatusSold:
		return "https://schema.org/SoldOut"
	default:
		return "https://schema.org/InStock"
	}
}
