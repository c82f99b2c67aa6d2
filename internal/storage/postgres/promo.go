package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
)

const (
	findPromoByCodeSQL = `SELECT code, rule_type, value, description, active
		FROM promo_codes WHERE code = $1 AND active`

	listPromoCodesSQL = `SELECT code FROM promo_codes WHERE active ORDER BY code`

	upsertPromoSQL = `INSERT INTO promo_codes (code, rule_type, value, description, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			rule_type = EXCLUDED.rule_type,
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			active = EXCLUDED.active`
)

var _ promo.Repository = (*PromoRepository)(nil)

// PromoRepository implements promo.Repository backed by PostgreSQL.
type PromoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository returns a PromoRepository that uses the given pool.
func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

// FindByCode looks up an active promo rule by its code.
// Returns promo.ErrCodeNotFound when no matching active rule exists.
func (r *PromoRepository) FindByCode(ctx context.Context, code string) (*promo.Rule, error) {
	rows, err := r.pool.Query(ctx, findPromoByCodeSQL, code)
	if err != nil {
		return nil, fmt.Errorf("finding promo code %q: %w", code, err)
	}

	rule, err := pgx.CollectExactlyOneRow(rows, scanRule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, promo.ErrCodeNotFound
		}
		return nil, fmt.Errorf("finding promo code %q: %w", code, err)
	}
	return &rule, nil
}

// ListCodes returns every active promo code ordered lexically.
func (r *PromoRepository) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, listPromoCodesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing promo codes: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var code string
		err := row.Scan(&code)
		return code, err
	})
}

// Upsert inserts or replaces a promo rule.
func (r *PromoRepository) Upsert(ctx context.Context, rule promo.Rule) error {
	_, err := r.pool.Exec(ctx, upsertPromoSQL,
		rule.Code, string(rule.Type), rule.Value, rule.Description, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("upserting promo code %q: %w", rule.Code, err)
	}
	return nil
}

func scanRule(row pgx.CollectableRow) (promo.Rule, error) {
	var (
		rule     promo.Rule
		ruleType string
	)
	err := row.Scan(&rule.Code, &ruleType, &rule.Value, &rule.Description, &rule.Active)
	rule.Type = promo.Type(ruleType)
	return rule, err
}
