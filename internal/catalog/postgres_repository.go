package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository loads catalog reference data from the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("catalog: querier required")
	}
	return &PostgresRepository{pool: q}
}

// ListCategories returns categories ordered by display_order, optionally
// populating their specializations.
func (r *PostgresRepository) ListCategories(ctx context.Context, withSpecializations bool) ([]ServiceCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(icon, ''), display_order
		FROM service_categories
		ORDER BY display_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	defer rows.Close()

	var categories []ServiceCategory
	byID := make(map[int64]int)
	for rows.Next() {
		var c ServiceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("catalog: scan category: %w", err)
		}
		byID[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate categories: %w", err)
	}

	if !withSpecializations || len(categories) == 0 {
		return categories, nil
	}

	specRows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, COALESCE(description, ''), suggested_duration_minutes, display_order
		FROM category_specializations
		ORDER BY category_id, display_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list specializations: %w", err)
	}
	defer specRows.Close()

	for specRows.Next() {
		var s Specialization
		if err := specRows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.SuggestedDurationMinutes, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("catalog: scan specialization: %w", err)
		}
		if i, ok := byID[s.CategoryID]; ok {
			categories[i].Specializations = append(categories[i].Specializations, s)
		}
	}
	if err := specRows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate specializations: %w", err)
	}

	return categories, nil
}

// GetCategory returns one category with its specializations.
func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (*ServiceCategory, error) {
	var c ServiceCategory
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(icon, ''), display_order
		FROM service_categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.DisplayOrder)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("catalog: get category: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, COALESCE(description, ''), suggested_duration_minutes, display_order
		FROM category_specializations
		WHERE category_id = $1
		ORDER BY display_order, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: get category specializations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Specialization
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.SuggestedDurationMinutes, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("catalog: scan specialization: %w", err)
		}
		c.Specializations = append(c.Specializations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate specializations: %w", err)
	}

	return &c, nil
}

// ListTemplates returns the service pricing templates.
func (r *PostgresRepository) ListTemplates(ctx context.Context) ([]ServiceTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, specialization_id, name, price_min, price_max, duration_minutes, created_at
		FROM service_templates
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list templates: %w", err)
	}
	defer rows.Close()

	var templates []ServiceTemplate
	for rows.Next() {
		var t ServiceTemplate
		if err := rows.Scan(&t.ID, &t.SpecializationID, &t.Name, &t.PriceMin, &t.PriceMax, &t.DurationMinutes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate templates: %w", err)
	}

	return templates, nil
}
