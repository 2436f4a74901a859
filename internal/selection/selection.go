// Package selection maintains the category/specialization selection state of
// the registration wizard. All mutations preserve the single invariant the
// picker relies on: a category id is selected if and only if at least one of
// its specializations is selected. UI components never maintain the two sets
// themselves; they go through this module.
package selection

import (
	"errors"
	"sort"

	"github.com/vetfinder/vetfinder-backend/internal/catalog"
)

var (
	// ErrUnknownSpecialization is returned when the id is not in the catalog
	ErrUnknownSpecialization = errors.New("selection: unknown specialization")

	// ErrUnknownCategory is returned when the id is not in the catalog
	ErrUnknownCategory = errors.New("selection: unknown category")
)

// Selection tracks selected categories and specializations against a loaded
// catalog index. Not safe for concurrent use; callers hold it inside a draft
// session which is accessed by one request at a time.
type Selection struct {
	idx             *catalog.Index
	categories      map[int64]struct{}
	specializations map[int64]struct{}
	expanded        map[int64]struct{}
}

// New creates an empty selection over the given catalog.
func New(idx *catalog.Index) *Selection {
	return &Selection{
		idx:             idx,
		categories:      make(map[int64]struct{}),
		specializations: make(map[int64]struct{}),
		expanded:        make(map[int64]struct{}),
	}
}

// ToggleSpecialization flips one specialization. Selecting it always selects
// the parent category; deselecting the last selected specialization under a
// category deselects the category too.
func (s *Selection) ToggleSpecialization(specID int64) error {
	spec, ok := s.idx.Specialization(specID)
	if !ok {
		return ErrUnknownSpecialization
	}

	if _, selected := s.specializations[specID]; selected {
		delete(s.specializations, specID)
		if !s.anySiblingSelected(spec.CategoryID) {
			delete(s.categories, spec.CategoryID)
		}
		return nil
	}

	s.specializations[specID] = struct{}{}
	s.categories[spec.CategoryID] = struct{}{}
	return nil
}

// ToggleAllInCategory selects every specialization in the category, or
// deselects all of them when all are already selected. A category with no
// specializations is left untouched, so it can never enter the selected set.
func (s *Selection) ToggleAllInCategory(categoryID int64) error {
	if _, ok := s.idx.Category(categoryID); !ok {
		return ErrUnknownCategory
	}

	specs := s.idx.SpecializationsIn(categoryID)
	if len(specs) == 0 {
		return nil
	}

	allSelected := true
	for _, spec := range specs {
		if _, ok := s.specializations[spec.ID]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		for _, spec := range specs {
			delete(s.specializations, spec.ID)
		}
		delete(s.categories, categoryID)
		return nil
	}

	for _, spec := range specs {
		s.specializations[spec.ID] = struct{}{}
	}
	s.categories[categoryID] = struct{}{}
	return nil
}

// ToggleExpansion flips the expanded/collapsed presentation state of a
// category group. Independent of selection.
func (s *Selection) ToggleExpansion(categoryID int64) {
	if _, ok := s.expanded[categoryID]; ok {
		delete(s.expanded, categoryID)
		return
	}
	s.expanded[categoryID] = struct{}{}
}

// Clear removes every selected category and specialization.
func (s *Selection) Clear() {
	s.categories = make(map[int64]struct{})
	s.specializations = make(map[int64]struct{})
}

func (s *Selection) anySiblingSelected(categoryID int64) bool {
	for _, sibling := range s.idx.SpecializationsIn(categoryID) {
		if _, ok := s.specializations[sibling.ID]; ok {
			return true
		}
	}
	return false
}

// IsSpecializationSelected reports whether the specialization is selected.
func (s *Selection) IsSpecializationSelected(id int64) bool {
	_, ok := s.specializations[id]
	return ok
}

// IsCategorySelected reports whether the category is selected.
func (s *Selection) IsCategorySelected(id int64) bool {
	_, ok := s.categories[id]
	return ok
}

// IsExpanded reports whether the category group is expanded.
func (s *Selection) IsExpanded(id int64) bool {
	_, ok := s.expanded[id]
	return ok
}

// CategoryIDs returns the selected category ids in ascending order.
func (s *Selection) CategoryIDs() []int64 {
	return sortedKeys(s.categories)
}

// SpecializationIDs returns the selected specialization ids in ascending order.
func (s *Selection) SpecializationIDs() []int64 {
	return sortedKeys(s.specializations)
}

// Snapshot is the serializable form of a selection, stored inside drafts.
type Snapshot struct {
	CategoryIDs       []int64 `json:"category_ids"`
	SpecializationIDs []int64 `json:"specialization_ids"`
	ExpandedIDs       []int64 `json:"expanded_ids,omitempty"`
}

// Snapshot captures the current state for persistence.
func (s *Selection) Snapshot() Snapshot {
	return Snapshot{
		CategoryIDs:       s.CategoryIDs(),
		SpecializationIDs: sortedKeys(s.specializations),
		ExpandedIDs:       sortedKeys(s.expanded),
	}
}

// Restore rebuilds a selection from a snapshot. The category set is
// re-derived from the specializations rather than trusted, so the invariant
// holds even if the stored snapshot predates a catalog change.
func Restore(idx *catalog.Index, snap Snapshot) *Selection {
	s := New(idx)
	for _, id := range snap.SpecializationIDs {
		if spec, ok := idx.Specialization(id); ok {
			s.specializations[id] = struct{}{}
			s.categories[spec.CategoryID] = struct{}{}
		}
	}
	for _, id := range snap.ExpandedIDs {
		s.expanded[id] = struct{}{}
	}
	return s
}

func sortedKeys(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
