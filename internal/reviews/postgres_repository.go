package reviews

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository persists reviews in PostgreSQL.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("reviews: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("reviews: querier required")
	}
	return &PostgresRepository{pool: q}
}

func (r *PostgresRepository) Create(ctx context.Context, rv *Review) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (company_id, author_name, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rv.CompanyID, rv.AuthorName, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("reviews: create: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, author_name, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE company_id = $1
		ORDER BY created_at DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("reviews: list: %w", err)
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.CompanyID, &rv.AuthorName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("reviews: scan: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reviews: iterate: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Summary(ctx context.Context, companyID string) (*RatingSummary, error) {
	var s RatingSummary
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE company_id = $1
	`, companyID).Scan(&s.Average, &s.Count)
	if err != nil {
		return nil, fmt.Errorf("reviews: summary: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reviews: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}
