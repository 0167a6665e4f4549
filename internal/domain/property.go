package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Property is a published listing. Price, Location and Type are the fields
// the match flow reads; they are treated as immutable during a single
// evaluation.
type Property struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       int64
	// Location is a single area identifier, compared against buyer
	// preferences through LocationsMatch.
	Location     string
	PropertyType PropertyType
	Status       PropertyStatus
	DeveloperID  *uuid.UUID
	ProjectID    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertyType is the fixed listing-type enumeration shared with buyer
// preferences.
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeApartment   PropertyType = "APARTMENT"
	PropertyTypeVilla       PropertyType = "VILLA"
	PropertyTypeTownhouse   PropertyType = "TOWNHOUSE"
	PropertyTypeDuplex      PropertyType = "DUPLEX"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
)

func (t PropertyType) String() string {
	return string(t)
}

// ParsePropertyType maps a wire value to a PropertyType. Unknown values fall
// back to unspecified.
func ParsePropertyType(s string) PropertyType {
	switch PropertyType(normalizeEnum(s)) {
	case PropertyTypeApartment:
		return PropertyTypeApartment
	case PropertyTypeVilla:
		return PropertyTypeVilla
	case PropertyTypeTownhouse:
		return PropertyTypeTownhouse
	case PropertyTypeDuplex:
		return PropertyTypeDuplex
	case PropertyTypeCommercial:
		return PropertyTypeCommercial
	default:
		return PropertyTypeUnspecified
	}
}

// PropertyStatus is the listing lifecycle state.
type PropertyStatus string

const (
	PropertyStatusUnspecified PropertyStatus = ""
	PropertyStatusDraft       PropertyStatus = "DRAFT"
	PropertyStatusPublished   PropertyStatus = "PUBLISHED"
	PropertyStatusSold        PropertyStatus = "SOLD"
	PropertyStatusArchived    PropertyStatus = "ARCHIVED"
)

func (s PropertyStatus) String() string {
	return string(s)
}

// PropertyFilter carries list filters or partial updates for properties.
type PropertyFilter struct {
	Title        *string
	Description  *string
	Location     *string
	PropertyType *PropertyType
	Price        *int64
	MinPrice     *int64
	MaxPrice     *int64
	Status       *PropertyStatus
	DeveloperID  *uuid.UUID
	ProjectID    *uuid.UUID

	Pagination *PaginationParams
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
