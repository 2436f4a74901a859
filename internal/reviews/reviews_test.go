package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

func newTestRouter() *chi.Mux {
	h := NewHandler(NewInMemoryRepository(), logging.Default())

	r := chi.NewRouter()
	r.Post("/companies/{companyID}/reviews", h.Create)
	r.Get("/companies/{companyID}/reviews", h.ListByCompany)
	r.Delete("/reviews/{reviewID}", h.Delete)
	return r
}

func postReview(t *testing.T, router http.Handler, rating int) Review {
	t.Helper()
	body, _ := json.Marshal(CreateReviewRequest{AuthorName: "Ana", Rating: rating, Comment: "Servicii excelente"})
	req := httptest.NewRequest(http.MethodPost, "/companies/c-1/reviews", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var rv Review
	if err := json.NewDecoder(w.Body).Decode(&rv); err != nil {
		t.Fatal(err)
	}
	return rv
}

func TestCreateReview(t *testing.T) {
	router := newTestRouter()

	rv := postReview(t, router, 5)
	if rv.ID == "" || rv.CompanyID != "c-1" {
		t.Errorf("unexpected review: %+v", rv)
	}
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	router := newTestRouter()

	for _, rating := range []int{0, 6, -1} {
		body, _ := json.Marshal(CreateReviewRequest{AuthorName: "Ana", Rating: rating})
		req := httptest.NewRequest(http.MethodPost, "/companies/c-1/reviews", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("rating %d: expected 422, got %d", rating, w.Code)
		}
	}
}

func TestListIncludesSummary(t *testing.T) {
	router := newTestRouter()
	postReview(t, router, 5)
	postReview(t, router, 4)
	postReview(t, router, 3)

	req := httptest.NewRequest(http.MethodGet, "/companies/c-1/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Count   int           `json:"count"`
		Summary RatingSummary `json:"summary"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 3 {
		t.Errorf("expected 3 reviews, got %d", resp.Count)
	}
	if math.Abs(resp.Summary.Average-4.0) > 1e-9 {
		t.Errorf("expected average 4.0, got %v", resp.Summary.Average)
	}
}

func TestDeleteReview(t *testing.T) {
	router := newTestRouter()
	rv := postReview(t, router, 2)

	req := httptest.NewRequest(http.MethodDelete, "/reviews/"+rv.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/reviews/"+rv.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestCommentLengthLimit(t *testing.T) {
	req := CreateReviewRequest{AuthorName: "Ana", Rating: 4, Comment: strings.Repeat("a", 2001)}
	if errs := req.Validate(); errs["comment"] == "" {
		t.Error("expected comment length error")
	}
}

func TestPostgresSummary(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)

	mock.ExpectQuery("SELECT COALESCE").WithArgs("c-1").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 12))

	s, err := repo.Summary(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Average != 4.5 || s.Count != 12 {
		t.Errorf("unexpected summary: %+v", s)
	}
}
