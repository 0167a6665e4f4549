package property_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lead_gen/internal/domain"
	"lead_gen/internal/repository"
)

type PropertyRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewPropertyRepository(db *pgxpool.Pool, log *slog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, log: log}
}

// CreateProperty inserts a new listing.
func (r *PropertyRepository) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	const op = "PropertyRepository.CreateProperty"

	query := `
		INSERT INTO properties (
			title, description, price, location, property_type,
			status, developer_id, project_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING property_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		property.Title,
		property.Description,
		property.Price,
		property.Location,
		property.PropertyType.String(),
		property.Status.String(),
		property.DeveloperID,
		property.ProjectID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID fetches a listing.
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	const op = "PropertyRepository.GetByID"

	query := `
		SELECT
			property_id, title, description, price, location, property_type,
			status, developer_id, project_id, created_at, updated_at
		FROM properties
		WHERE property_id = $1
	`

	var p domain.Property
	var propertyType, status string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Location,
		&propertyType,
		&status,
		&p.DeveloperID,
		&p.ProjectID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	p.PropertyType = domain.PropertyType(propertyType)
	p.Status = domain.PropertyStatus(status)
	return p, nil
}

// UpdateProperty applies a partial update.
func (r *PropertyRepository) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) error {
	const op = "PropertyRepository.UpdateProperty"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", paramCount))
		params = append(params, *update.Title)
		paramCount++
	}
	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", paramCount))
		params = append(params, *update.Description)
		paramCount++
	}
	if update.Price != nil {
		setClauses = append(setClauses, fmt.Sprintf("price = $%d", paramCount))
		params = append(params, *update.Price)
		paramCount++
	}
	if update.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", paramCount))
		params = append(params, *update.Location)
		paramCount++
	}
	if update.PropertyType != nil {
		setClauses = append(setClauses, fmt.Sprintf("property_type = $%d", paramCount))
		params = append(params, (*update.PropertyType).String())
		paramCount++
	}
	if update.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, (*update.Status).String())
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE property_id = $%d`, strings.Join(setClauses, ", "), paramCount)
	params = append(params, propertyID)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// ListProperties returns a page of listings. Keyset pagination on
// (created_at, property_id).
func (r *PropertyRepository) ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error) {
	const op = "PropertyRepository.ListProperties"

	pageSize := int(domain.DefaultPageSize)
	orderDir := domain.OrderDesc
	var cursor *domain.PageCursor

	if filter.Pagination != nil {
		pageSize = int(domain.NormalizePageSize(filter.Pagination.PageSize))
		orderDir = domain.NormalizeOrderDirection(string(filter.Pagination.OrderDirection))
		if filter.Pagination.PageToken != "" {
			var err error
			cursor, err = domain.DecodePageCursor(filter.Pagination.PageToken)
			if err != nil {
				r.log.Warn("failed to decode page cursor, starting from beginning", "error", err)
				cursor = nil
			}
		}
	}

	whereClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, (*filter.Status).String())
		paramCount++
	}
	if filter.Location != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(location) = LOWER($%d)", paramCount))
		params = append(params, *filter.Location)
		paramCount++
	}
	if filter.PropertyType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", paramCount))
		params = append(params, (*filter.PropertyType).String())
		paramCount++
	}
	if filter.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", paramCount))
		params = append(params, *filter.MinPrice)
		paramCount++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", paramCount))
		params = append(params, *filter.MaxPrice)
		paramCount++
	}
	if filter.DeveloperID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("developer_id = $%d", paramCount))
		params = append(params, *filter.DeveloperID)
		paramCount++
	}
	if filter.ProjectID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("project_id = $%d", paramCount))
		params = append(params, *filter.ProjectID)
		paramCount++
	}

	if cursor != nil {
		cmp := "<"
		if orderDir == domain.OrderAsc {
			cmp = ">"
		}
		whereClauses = append(whereClauses,
			fmt.Sprintf("(created_at, property_id) %s ($%d, $%d)", cmp, paramCount, paramCount+1))
		params = append(params, cursor.LastCreatedAt, cursor.LastID)
		paramCount += 2
	}

	query := `
		SELECT
			property_id, title, description, price, location, property_type,
			status, developer_id, project_id, created_at, updated_at
		FROM properties
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dirStr := "DESC"
	if orderDir == domain.OrderAsc {
		dirStr = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, property_id %s LIMIT $%d", dirStr, dirStr, paramCount)
	params = append(params, pageSize+1)

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		var propertyType, status string
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Location,
			&propertyType,
			&status,
			&p.DeveloperID,
			&p.ProjectID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		p.PropertyType = domain.PropertyType(propertyType)
		p.Status = domain.PropertyStatus(status)
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	hasMore := len(properties) > pageSize
	if hasMore {
		properties = properties[:pageSize]
	}

	result := &domain.PaginatedResult[domain.Property]{
		Items:   properties,
		HasMore: hasMore,
	}
	if hasMore && len(properties) > 0 {
		last := properties[len(properties)-1]
		result.NextPageToken = (&domain.PageCursor{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt,
		}).Encode()
	}

	return result, nil
}
