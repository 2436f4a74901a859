package company

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository persists companies in PostgreSQL. Opening hours are
// stored as a JSONB column.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("company: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("company: querier required")
	}
	return &PostgresRepository{pool: q}
}

const companyColumns = `id, name, email, phone, cui, website_url, description, clinic_type,
	street, locality, county_code, postal_code, latitude, longitude,
	opening_hours, logo_key, status, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, c *Company) error {
	hours, err := json.Marshal(c.OpeningHours)
	if err != nil {
		return fmt.Errorf("company: marshal opening hours: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO companies (
			name, email, phone, cui, website_url, description, clinic_type,
			street, locality, county_code, postal_code, latitude, longitude,
			opening_hours, logo_key, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Email, c.Phone, c.CUI, c.WebsiteURL, c.Description, c.ClinicType,
		c.Street, c.Locality, c.CountyCode, c.PostalCode, c.Latitude, c.Longitude,
		hours, c.LogoKey, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("company: create: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE id = $1
	`, id)

	c, err := scanCompany(row)
	if err == pgx.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("company: get: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Company, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.CountyCode != "" {
		add("county_code = $%d", filter.CountyCode)
	}
	if filter.ClinicType != "" {
		add("clinic_type = $%d", filter.ClinicType)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Query != "" {
		add("name ILIKE $%d", "%"+filter.Query+"%")
	}

	query := `SELECT ` + companyColumns + ` FROM companies`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("company: list: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("company: scan: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("company: iterate: %w", err)
	}
	return companies, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *Company) error {
	hours, err := json.Marshal(c.OpeningHours)
	if err != nil {
		return fmt.Errorf("company: marshal opening hours: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET name = $2, email = $3, phone = $4, website_url = $5, description = $6,
			opening_hours = $7, updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Name, c.Email, c.Phone, c.WebsiteURL, c.Description, hours)
	if err != nil {
		return fmt.Errorf("company: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE companies SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("company: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresRepository) SetLogo(ctx context.Context, id, logoKey string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE companies SET logo_key = $2, updated_at = NOW() WHERE id = $1
	`, id, logoKey)
	if err != nil {
		return fmt.Errorf("company: set logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("company: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *PostgresRepository) AddService(ctx context.Context, s *Service) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO company_services (
			company_id, specialization_id, category_id, name,
			price_min, price_max, duration_minutes, is_custom
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, s.CompanyID, s.SpecializationID, s.CategoryID, s.Name,
		s.PriceMin, s.PriceMax, s.DurationMinutes, s.IsCustom,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("company: add service: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListServices(ctx context.Context, companyID string) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, specialization_id, category_id, name,
			price_min, price_max, duration_minutes, is_custom, created_at
		FROM company_services
		WHERE company_id = $1
		ORDER BY created_at, id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("company: list services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.SpecializationID, &s.CategoryID, &s.Name,
			&s.PriceMin, &s.PriceMax, &s.DurationMinutes, &s.IsCustom, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("company: scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("company: iterate services: %w", err)
	}
	return services, nil
}

func (r *PostgresRepository) DeleteService(ctx context.Context, companyID, serviceID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM company_services WHERE id = $1 AND company_id = $2
	`, serviceID, companyID)
	if err != nil {
		return fmt.Errorf("company: delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PostgresRepository) AddPhoto(ctx context.Context, p *Photo) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO company_photos (company_id, storage_key, position)
		VALUES ($1, $2, COALESCE((SELECT MAX(position) FROM company_photos WHERE company_id = $1), 0) + 1)
		RETURNING id, position, created_at
	`, p.CompanyID, p.Key).Scan(&p.ID, &p.Position, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("company: add photo: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListPhotos(ctx context.Context, companyID string) ([]Photo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, storage_key, position, created_at
		FROM company_photos
		WHERE company_id = $1
		ORDER BY position
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("company: list photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Key, &p.Position, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("company: scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("company: iterate photos: %w", err)
	}
	return photos, nil
}

func (r *PostgresRepository) CountPhotos(ctx context.Context, companyID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM company_photos WHERE company_id = $1
	`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("company: count photos: %w", err)
	}
	return count, nil
}

func scanCompany(row pgx.Row) (*Company, error) {
	var (
		c     Company
		hours []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CUI, &c.WebsiteURL, &c.Description, &c.ClinicType,
		&c.Street, &c.Locality, &c.CountyCode, &c.PostalCode, &c.Latitude, &c.Longitude,
		&hours, &c.LogoKey, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &c.OpeningHours); err != nil {
			return nil, fmt.Errorf("unmarshal opening hours: %w", err)
		}
	}
	return &c, nil
}
