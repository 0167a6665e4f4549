package lead_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"lead_gen/internal/domain"
	"lead_gen/internal/repository"
)

type LeadRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewLeadRepository(db *pgxpool.Pool, log *slog.Logger) *LeadRepository {
	return &LeadRepository{db: db, log: log}
}

// CreateLead inserts a lead snapshot. The unique index on
// (buyer_id, property_id) closes the check-then-write race between two
// simultaneous interest submissions; a violation maps to
// ErrLeadAlreadyExists.
func (r *LeadRepository) CreateLead(ctx context.Context, lead domain.Lead) (uuid.UUID, error) {
	const op = "LeadRepository.CreateLead"

	query := `
		INSERT INTO leads (
			buyer_id, property_id,
			buyer_name, buyer_phone, buyer_email,
			budget, locations, property_types,
			score, score_tier, overridden, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING lead_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		lead.BuyerID,
		lead.PropertyID,
		lead.BuyerName,
		lead.BuyerPhone,
		lead.BuyerEmail,
		lead.Budget,
		lead.Locations,
		typesToStrings(lead.PropertyTypes),
		lead.Score,
		lead.ScoreTier.String(),
		lead.Overridden,
		lead.Status.String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repository.UniqueViolationCode {
			return uuid.Nil, fmt.Errorf("%s: %w", op, repository.ErrLeadAlreadyExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID fetches a lead.
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	const op = "LeadRepository.GetByID"

	query := `
		SELECT
			lead_id, buyer_id, property_id,
			buyer_name, buyer_phone, buyer_email,
			budget, locations, property_types,
			score, score_tier, overridden, status,
			created_at, updated_at
		FROM leads
		WHERE lead_id = $1
	`

	lead, err := scanLead(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, fmt.Errorf("%s: %w", op, repository.ErrLeadNotFound)
		}
		return domain.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	return lead, nil
}

// ExistsForBuyerProperty reports whether a lead already links the pair.
// Advisory only: CreateLead still holds the authoritative constraint.
func (r *LeadRepository) ExistsForBuyerProperty(ctx context.Context, buyerID, propertyID uuid.UUID) (bool, error) {
	const op = "LeadRepository.ExistsForBuyerProperty"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM leads WHERE buyer_id = $1 AND property_id = $2)`,
		buyerID, propertyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// UpdateStatus moves a lead through the marketer workflow.
func (r *LeadRepository) UpdateStatus(ctx context.Context, leadID uuid.UUID, status domain.LeadStatus) error {
	const op = "LeadRepository.UpdateStatus"

	tag, err := r.db.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE lead_id = $2`,
		status.String(), leadID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrLeadNotFound)
	}

	return nil
}

// ListLeads returns a page of leads for triage. Keyset pagination on
// (created_at, lead_id).
func (r *LeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error) {
	const op = "LeadRepository.ListLeads"

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

	if filter.BuyerID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("buyer_id = $%d", paramCount))
		params = append(params, *filter.BuyerID)
		paramCount++
	}
	if filter.PropertyID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("property_id = $%d", paramCount))
		params = append(params, *filter.PropertyID)
		paramCount++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, (*filter.Status).String())
		paramCount++
	}
	if filter.ScoreTier != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("score_tier = $%d", paramCount))
		params = append(params, (*filter.ScoreTier).String())
		paramCount++
	}
	if filter.Overridden != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("overridden = $%d", paramCount))
		params = append(params, *filter.Overridden)
		paramCount++
	}

	if cursor != nil {
		cmp := "<"
		if orderDir == domain.OrderAsc {
			cmp = ">"
		}
		whereClauses = append(whereClauses,
			fmt.Sprintf("(created_at, lead_id) %s ($%d, $%d)", cmp, paramCount, paramCount+1))
		params = append(params, cursor.LastCreatedAt, cursor.LastID)
		paramCount += 2
	}

	query := `
		SELECT
			lead_id, buyer_id, property_id,
			buyer_name, buyer_phone, buyer_email,
			budget, locations, property_types,
			score, score_tier, overridden, status,
			created_at, updated_at
		FROM leads
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dirStr := "DESC"
	if orderDir == domain.OrderAsc {
		dirStr = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, lead_id %s LIMIT $%d", dirStr, dirStr, paramCount)
	params = append(params, pageSize+1)

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	hasMore := len(leads) > pageSize
	if hasMore {
		leads = leads[:pageSize]
	}

	result := &domain.PaginatedResult[domain.Lead]{
		Items:   leads,
		HasMore: hasMore,
	}
	if hasMore && len(leads) > 0 {
		last := leads[len(leads)-1]
		result.NextPageToken = (&domain.PageCursor{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt,
		}).Encode()
	}

	return result, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var l domain.Lead
	var tier, status string
	var types []string

	err := row.Scan(
		&l.ID,
		&l.BuyerID,
		&l.PropertyID,
		&l.BuyerName,
		&l.BuyerPhone,
		&l.BuyerEmail,
		&l.Budget,
		&l.Locations,
		&types,
		&l.Score,
		&tier,
		&l.Overridden,
		&status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}

	l.ScoreTier = domain.ScoreTier(tier)
	l.Status = domain.LeadStatus(status)
	l.PropertyTypes = lo.Map(types, func(t string, _ int) domain.PropertyType {
		return domain.PropertyType(t)
	})
	return l, nil
}

func typesToStrings(types []domain.PropertyType) []string {
	return lo.Map(types, func(t domain.PropertyType, _ int) string {
		return t.String()
	})
}
