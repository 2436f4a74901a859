package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

func newTestHandler() *Handler {
	repo := NewInMemoryRepository(SeedCategories(), SeedTemplates())
	return NewHandler(repo, logging.Default())
}

func TestListCategoriesWithSpecializations(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/service-categories?with=specializations", nil)
	w := httptest.NewRecorder()

	handler.ListCategories(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Categories []ServiceCategory `json:"categories"`
		Count      int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 5 {
		t.Errorf("expected 5 categories, got %d", resp.Count)
	}
	if len(resp.Categories[0].Specializations) == 0 {
		t.Error("expected specializations to be populated")
	}
}

func TestListCategoriesWithoutSpecializations(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/service-categories", nil)
	w := httptest.NewRecorder()

	handler.ListCategories(w, req)

	var resp struct {
		Categories []ServiceCategory `json:"categories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, c := range resp.Categories {
		if len(c.Specializations) != 0 {
			t.Errorf("expected no specializations for category %d", c.ID)
		}
	}
}

func TestGetCategory(t *testing.T) {
	handler := newTestHandler()

	r := chi.NewRouter()
	r.Get("/service-categories/{categoryID}", handler.GetCategory)

	req := httptest.NewRequest(http.MethodGet, "/service-categories/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var cat ServiceCategory
	if err := json.NewDecoder(w.Body).Decode(&cat); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if cat.Name != "Chirurgie" {
		t.Errorf("expected Chirurgie, got %s", cat.Name)
	}
	if len(cat.Specializations) != 3 {
		t.Errorf("expected 3 specializations, got %d", len(cat.Specializations))
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	handler := newTestHandler()

	r := chi.NewRouter()
	r.Get("/service-categories/{categoryID}", handler.GetCategory)

	req := httptest.NewRequest(http.MethodGet, "/service-categories/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestListTemplates(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/service-templates", nil)
	w := httptest.NewRecorder()

	handler.ListTemplates(w, req)

	var resp struct {
		Templates []ServiceTemplate `json:"templates"`
		Count     int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 4 {
		t.Errorf("expected 4 templates, got %d", resp.Count)
	}
}

func TestIndexLookups(t *testing.T) {
	idx := NewIndex(SeedCategories())

	if idx.Empty() {
		t.Fatal("expected loaded index to be non-empty")
	}

	spec, ok := idx.Specialization(102)
	if !ok || spec.Name != "Vaccinare" {
		t.Errorf("Specialization(102) = %+v, %v", spec, ok)
	}
	if spec.CategoryID != 1 {
		t.Errorf("expected category 1, got %d", spec.CategoryID)
	}

	if _, ok := idx.Category(5); !ok {
		t.Error("expected category 5 to exist")
	}
	if got := len(idx.SpecializationsIn(5)); got != 0 {
		t.Errorf("expected empty category to have 0 specializations, got %d", got)
	}

	var nilIdx *Index
	if !nilIdx.Empty() {
		t.Error("nil index must report empty")
	}

	if !NewIndex(nil).Empty() {
		t.Error("index over no data must report empty")
	}
}

func TestInMemoryRepositorySorting(t *testing.T) {
	repo := NewInMemoryRepository([]ServiceCategory{
		{ID: 2, Name: "B", DisplayOrder: 2},
		{ID: 1, Name: "A", DisplayOrder: 1, Specializations: []Specialization{
			{ID: 11, CategoryID: 1, Name: "second", DisplayOrder: 2},
			{ID: 10, CategoryID: 1, Name: "first", DisplayOrder: 1},
		}},
	}, nil)

	cats, err := repo.ListCategories(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cats[0].ID != 1 || cats[1].ID != 2 {
		t.Errorf("expected categories sorted by display order, got %v, %v", cats[0].ID, cats[1].ID)
	}
	if cats[0].Specializations[0].Name != "first" {
		t.Errorf("expected specializations sorted, got %s", cats[0].Specializations[0].Name)
	}
}
