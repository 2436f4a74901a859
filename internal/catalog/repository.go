package catalog

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for catalog reference data access.
type Repository interface {
	ListCategories(ctx context.Context, withSpecializations bool) ([]ServiceCategory, error)
	GetCategory(ctx context.Context, id int64) (*ServiceCategory, error)
	ListTemplates(ctx context.Context) ([]ServiceTemplate, error)
}

// InMemoryRepository serves a fixed catalog from memory. Used in tests and
// local development without Postgres.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []ServiceCategory
	templates  []ServiceTemplate
}

// NewInMemoryRepository creates a repository over the given data.
func NewInMemoryRepository(categories []ServiceCategory, templates []ServiceTemplate) *InMemoryRepository {
	sorted := make([]ServiceCategory, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })
	for i := range sorted {
		specs := make([]Specialization, len(sorted[i].Specializations))
		copy(specs, sorted[i].Specializations)
		sort.SliceStable(specs, func(a, b int) bool { return specs[a].DisplayOrder < specs[b].DisplayOrder })
		sorted[i].Specializations = specs
	}
	return &InMemoryRepository{categories: sorted, templates: templates}
}

// ListCategories returns all categories ordered by display_order.
func (r *InMemoryRepository) ListCategories(ctx context.Context, withSpecializations bool) ([]ServiceCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ServiceCategory, len(r.categories))
	copy(out, r.categories)
	if !withSpecializations {
		for i := range out {
			out[i].Specializations = nil
		}
	}
	return out, nil
}

// GetCategory returns one category with its specializations.
func (r *InMemoryRepository) GetCategory(ctx context.Context, id int64) (*ServiceCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			cat := r.categories[i]
			return &cat, nil
		}
	}
	return nil, ErrCategoryNotFound
}

// ListTemplates returns the pricing templates.
func (r *InMemoryRepository) ListTemplates(ctx context.Context) ([]ServiceTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ServiceTemplate, len(r.templates))
	copy(out, r.templates)
	return out, nil
}
