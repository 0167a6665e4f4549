package buyer_repository

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

type BuyerRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewBuyerRepository(db *pgxpool.Pool, log *slog.Logger) *BuyerRepository {
	return &BuyerRepository{db: db, log: log}
}

const buyerColumns = `
	buyer_id, name, phone, email, password_hash,
	budget, locations, property_types, buying_intent,
	score, score_tier, created_at, updated_at
`

// CreateBuyer inserts a new buyer. Email uniqueness is enforced by the
// schema; a violation maps to ErrBuyerAlreadyExists.
func (r *BuyerRepository) CreateBuyer(ctx context.Context, buyer domain.Buyer) (uuid.UUID, error) {
	const op = "BuyerRepository.CreateBuyer"

	query := `
		INSERT INTO buyers (
			name, phone, email, password_hash,
			budget, locations, property_types, buying_intent,
			score, score_tier
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING buyer_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		buyer.Name,
		buyer.Phone,
		buyer.Email,
		buyer.PasswordHash,
		buyer.Budget,
		buyer.Locations,
		typesToStrings(buyer.PropertyTypes),
		buyer.BuyingIntent.String(),
		buyer.Score,
		buyer.ScoreTier.String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == repository.UniqueViolationCode {
			return uuid.Nil, fmt.Errorf("%s: %w", op, repository.ErrBuyerAlreadyExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID fetches a buyer.
func (r *BuyerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Buyer, error) {
	const op = "BuyerRepository.GetByID"

	query := `SELECT` + buyerColumns + `FROM buyers WHERE buyer_id = $1`

	buyer, err := r.scanBuyer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Buyer{}, fmt.Errorf("%s: %w", op, repository.ErrBuyerNotFound)
		}
		return domain.Buyer{}, fmt.Errorf("%s: %w", op, err)
	}

	return buyer, nil
}

// GetByEmail fetches a buyer by login email.
func (r *BuyerRepository) GetByEmail(ctx context.Context, email string) (domain.Buyer, error) {
	const op = "BuyerRepository.GetByEmail"

	query := `SELECT` + buyerColumns + `FROM buyers WHERE LOWER(email) = LOWER($1)`

	buyer, err := r.scanBuyer(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Buyer{}, fmt.Errorf("%s: %w", op, repository.ErrBuyerNotFound)
		}
		return domain.Buyer{}, fmt.Errorf("%s: %w", op, err)
	}

	return buyer, nil
}

// UpdateBuyer applies a partial update. Score and tier always travel
// together here; the service layer guarantees the pair comes from one
// scoring result.
func (r *BuyerRepository) UpdateBuyer(ctx context.Context, buyerID uuid.UUID, update domain.BuyerFilter) error {
	const op = "BuyerRepository.UpdateBuyer"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", paramCount))
		params = append(params, *update.Name)
		paramCount++
	}
	if update.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", paramCount))
		params = append(params, *update.Phone)
		paramCount++
	}
	if update.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", paramCount))
		params = append(params, *update.Email)
		paramCount++
	}
	if update.Budget != nil {
		setClauses = append(setClauses, fmt.Sprintf("budget = $%d", paramCount))
		params = append(params, *update.Budget)
		paramCount++
	}
	if update.Locations != nil {
		setClauses = append(setClauses, fmt.Sprintf("locations = $%d", paramCount))
		params = append(params, *update.Locations)
		paramCount++
	}
	if update.PropertyTypes != nil {
		setClauses = append(setClauses, fmt.Sprintf("property_types = $%d", paramCount))
		params = append(params, typesToStrings(*update.PropertyTypes))
		paramCount++
	}
	if update.BuyingIntent != nil {
		setClauses = append(setClauses, fmt.Sprintf("buying_intent = $%d", paramCount))
		params = append(params, (*update.BuyingIntent).String())
		paramCount++
	}
	if update.Score != nil {
		setClauses = append(setClauses, fmt.Sprintf("score = $%d", paramCount))
		params = append(params, *update.Score)
		paramCount++
	}
	if update.ScoreTier != nil {
		setClauses = append(setClauses, fmt.Sprintf("score_tier = $%d", paramCount))
		params = append(params, (*update.ScoreTier).String())
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE buyers SET %s WHERE buyer_id = $%d`, strings.Join(setClauses, ", "), paramCount)
	params = append(params, buyerID)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrBuyerNotFound)
	}

	return nil
}

func (r *BuyerRepository) scanBuyer(row pgx.Row) (domain.Buyer, error) {
	var b domain.Buyer
	var intent, tier string
	var types []string

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Phone,
		&b.Email,
		&b.PasswordHash,
		&b.Budget,
		&b.Locations,
		&types,
		&intent,
		&b.Score,
		&tier,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return domain.Buyer{}, err
	}

	b.BuyingIntent = domain.BuyingIntent(intent)
	b.ScoreTier = domain.ScoreTier(tier)
	b.PropertyTypes = lo.Map(types, func(t string, _ int) domain.PropertyType {
		return domain.PropertyType(t)
	})
	return b, nil
}

func typesToStrings(types []domain.PropertyType) []string {
	return lo.Map(types, func(t domain.PropertyType, _ int) string {
		return t.String()
	})
}
