// Package catalog serves the read-only service category and specialization
// reference data used by the registration wizard.
package catalog

import "time"

// ServiceCategory groups related specializations (e.g. "Routine Care").
type ServiceCategory struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Icon            string           `json:"icon,omitempty"`
	DisplayOrder    int              `json:"display_order"`
	Specializations []Specialization `json:"specializations,omitempty"`
}

// Specialization is a concrete offered service nested under a category.
type Specialization struct {
	ID                       int64  `json:"id"`
	CategoryID               int64  `json:"category_id"`
	Name                     string `json:"name"`
	Description              string `json:"description,omitempty"`
	SuggestedDurationMinutes int    `json:"suggested_duration_minutes"`
	DisplayOrder             int    `json:"display_order"`
}

// ServiceTemplate is a prebuilt pricing suggestion shown in step 4.
type ServiceTemplate struct {
	ID               int64     `json:"id"`
	SpecializationID int64     `json:"specialization_id"`
	Name             string    `json:"name"`
	PriceMin         float64   `json:"price_min"`
	PriceMax         float64   `json:"price_max"`
	DurationMinutes  int       `json:"duration_minutes"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Index provides O(1) lookups over a loaded category list. The wizard's
// selection and pricing logic work against an Index rather than raw slices.
type Index struct {
	categories      []ServiceCategory
	categoryByID    map[int64]*ServiceCategory
	specializations map[int64]*Specialization
	specsByCategory map[int64][]Specialization
}

// NewIndex builds lookup maps over the given categories.
func NewIndex(categories []ServiceCategory) *Index {
	idx := &Index{
		categories:      categories,
		categoryByID:    make(map[int64]*ServiceCategory, len(categories)),
		specializations: make(map[int64]*Specialization),
		specsByCategory: make(map[int64][]Specialization),
	}
	for i := range categories {
		cat := &categories[i]
		idx.categoryByID[cat.ID] = cat
		idx.specsByCategory[cat.ID] = cat.Specializations
		for j := range cat.Specializations {
			spec := &cat.Specializations[j]
			idx.specializations[spec.ID] = spec
		}
	}
	return idx
}

// Empty reports whether any reference data has been loaded. The pricing
// reconciliation is gated on this so an unloaded catalog never wipes entries.
func (idx *Index) Empty() bool {
	return idx == nil || len(idx.categories) == 0
}

// Categories returns the loaded category list.
func (idx *Index) Categories() []ServiceCategory {
	if idx == nil {
		return nil
	}
	return idx.categories
}

// Category returns the category with the given id.
func (idx *Index) Category(id int64) (*ServiceCategory, bool) {
	if idx == nil {
		return nil, false
	}
	c, ok := idx.categoryByID[id]
	return c, ok
}

// Specialization returns the specialization with the given id.
func (idx *Index) Specialization(id int64) (*Specialization, bool) {
	if idx == nil {
		return nil, false
	}
	s, ok := idx.specializations[id]
	return s, ok
}

// SpecializationsIn returns the specializations under a category.
func (idx *Index) SpecializationsIn(categoryID int64) []Specialization {
	if idx == nil {
		return nil
	}
	return idx.specsByCategory[categoryID]
}
