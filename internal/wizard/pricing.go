package wizard

import (
	"github.com/vetfinder/vetfinder-backend/internal/catalog"
)

// syncPricing reconciles the pricing table with the current specialization
// selection:
//
//   - every selected specialization gets exactly one derived entry, named and
//     pre-filled from the catalog (template prices and suggested duration
//     when available);
//   - derived entries whose specialization is no longer selected are dropped;
//   - custom entries are always preserved;
//   - typed prices survive reconciliation: a pre-existing entry for the same
//     specialization that has no name yet donates its price fields to the
//     fresh entry.
//
// When the catalog index is empty (reference data not loaded) or nothing
// changed, the input slice is returned untouched.
func syncPricing(entries []PricingEntry, selectedSpecs []int64, idx *catalog.Index, templates []catalog.ServiceTemplate) []PricingEntry {
	if idx.Empty() {
		return entries
	}

	selected := make(map[int64]struct{}, len(selectedSpecs))
	for _, id := range selectedSpecs {
		selected[id] = struct{}{}
	}

	// Derived entries by specialization id, for change detection and price
	// preservation.
	derived := make(map[int64]PricingEntry)
	for _, e := range entries {
		if !e.IsCustom && e.SpecializationID != nil {
			derived[*e.SpecializationID] = e
		}
	}

	var newIDs []int64
	for _, id := range selectedSpecs {
		if e, ok := derived[id]; !ok || e.Name == "" {
			if _, ok := idx.Specialization(id); ok {
				newIDs = append(newIDs, id)
			}
		}
	}
	removed := false
	for id := range derived {
		if _, ok := selected[id]; !ok {
			removed = true
			break
		}
	}

	if len(newIDs) == 0 && !removed {
		return entries
	}

	templateBySpec := make(map[int64]catalog.ServiceTemplate, len(templates))
	for _, t := range templates {
		templateBySpec[t.SpecializationID] = t
	}

	var out []PricingEntry
	for _, e := range entries {
		if e.IsCustom {
			out = append(out, e)
			continue
		}
		if e.SpecializationID == nil {
			continue
		}
		if _, ok := selected[*e.SpecializationID]; ok && e.Name != "" {
			out = append(out, e)
		}
	}

	for _, id := range newIDs {
		spec, _ := idx.Specialization(id)
		specID := id
		catID := spec.CategoryID
		entry := PricingEntry{
			SpecializationID: &specID,
			CategoryID:       &catID,
			Name:             spec.Name,
			Description:      spec.Description,
			DurationMinutes:  spec.SuggestedDurationMinutes,
		}
		if t, ok := templateBySpec[id]; ok {
			entry.PriceMin = t.PriceMin
			entry.PriceMax = t.PriceMax
			if t.DurationMinutes > 0 {
				entry.DurationMinutes = t.DurationMinutes
			}
		}
		// A placeholder row for this specialization keeps any prices the
		// user already typed.
		if prev, ok := derived[id]; ok && prev.Name == "" {
			if prev.PriceMin > 0 {
				entry.PriceMin = prev.PriceMin
			}
			if prev.PriceMax > 0 {
				entry.PriceMax = prev.PriceMax
			}
		}
		out = append(out, entry)
	}

	return out
}
