package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize is the page size when the client sends none.
	DefaultPageSize = 20
	// MaxPageSize caps a single page.
	MaxPageSize = 200
)

// OrderDirection is the sort direction for list queries.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// PaginationParams are the cursor-pagination inputs for a list query.
type PaginationParams struct {
	PageSize       int32
	PageToken      string
	OrderDirection OrderDirection
}

// PageCursor marks the last row of the previous page.
type PageCursor struct {
	LastID        uuid.UUID `json:"id"`
	LastCreatedAt time.Time `json:"ca"`
}

// Encode serializes the cursor to an opaque base64 token.
func (c *PageCursor) Encode() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodePageCursor parses a page token. An empty token means first page.
func DecodePageCursor(token string) (*PageCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	var cursor PageCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, err
	}
	return &cursor, nil
}

// PaginatedResult is one page of a list query.
type PaginatedResult[T any] struct {
	Items         []T
	NextPageToken string
	HasMore       bool
}

// NormalizePageSize clamps the requested page size to the allowed range.
func NormalizePageSize(size int32) int32 {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizeOrderDirection defaults to newest-first.
func NormalizeOrderDirection(dir string) OrderDirection {
	if dir == "asc" || dir == "ASC" {
		return OrderAsc
	}
	return OrderDesc
}
