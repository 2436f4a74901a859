package appointments

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

// PostgresRepository persists appointments in PostgreSQL.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("appointments: querier required")
	}
	return &PostgresRepository{pool: q}
}

const appointmentColumns = `id, company_id, COALESCE(service_id::text, ''), owner_name, owner_email, owner_phone,
	pet_name, COALESCE(pet_species, ''), starts_at, duration_minutes, status, COALESCE(notes, ''),
	created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, a *Appointment) error {
	var serviceID any
	if a.ServiceID != "" {
		serviceID = a.ServiceID
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (
			company_id, service_id, owner_name, owner_email, owner_phone,
			pet_name, pet_species, starts_at, duration_minutes, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, a.CompanyID, serviceID, a.OwnerName, a.OwnerEmail, a.OwnerPhone,
		a.PetName, a.PetSpecies, a.StartsAt, a.DurationMinutes, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("appointments: create: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	err := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id).Scan(&a.ID, &a.CompanyID, &a.ServiceID, &a.OwnerName, &a.OwnerEmail, &a.OwnerPhone,
		&a.PetName, &a.PetSpecies, &a.StartsAt, &a.DurationMinutes, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: get: %w", err)
	}
	return &a, nil
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID, status string) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY starts_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ServiceID, &a.OwnerName, &a.OwnerEmail, &a.OwnerPhone,
			&a.PetName, &a.PetSpecies, &a.StartsAt, &a.DurationMinutes, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
