package catalog

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresListCategoriesWithSpecializations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)

	catRows := pgxmock.NewRows([]string{"id", "name", "description", "icon", "display_order"}).
		AddRow(int64(1), "Consultatii", "Routine care", "stethoscope", 1).
		AddRow(int64(2), "Chirurgie", "", "scalpel", 2)
	mock.ExpectQuery("SELECT id, name").WillReturnRows(catRows)

	specRows := pgxmock.NewRows([]string{"id", "category_id", "name", "description", "suggested_duration_minutes", "display_order"}).
		AddRow(int64(101), int64(1), "Vaccinare", "", 20, 1).
		AddRow(int64(201), int64(2), "Sterilizare", "", 90, 1)
	mock.ExpectQuery("SELECT id, category_id").WillReturnRows(specRows)

	cats, err := repo.ListCategories(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if len(cats[0].Specializations) != 1 || cats[0].Specializations[0].Name != "Vaccinare" {
		t.Errorf("unexpected specializations: %+v", cats[0].Specializations)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetCategoryNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)

	mock.ExpectQuery("SELECT id, name").WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "icon", "display_order"}))

	if _, err := repo.GetCategory(context.Background(), 42); err != ErrCategoryNotFound {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestPostgresListTemplates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "specialization_id", "name", "price_min", "price_max", "duration_minutes", "created_at"}).
		AddRow(int64(1), int64(101), "Consultatie", 80.0, 150.0, 30, now)
	mock.ExpectQuery("SELECT id, specialization_id").WillReturnRows(rows)

	templates, err := repo.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 1 || templates[0].PriceMax != 150 {
		t.Errorf("unexpected templates: %+v", templates)
	}
}
