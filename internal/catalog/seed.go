package catalog

// SeedCategories returns the built-in veterinary catalog used by the
// in-memory repository in development and tests. IDs are stable so drafts
// survive server restarts in dev mode.
func SeedCategories() []ServiceCategory {
	return []ServiceCategory{
		{
			ID: 1, Name: "Consultatii si preventie", Description: "Routine care and prevention", Icon: "stethoscope", DisplayOrder: 1,
			Specializations: []Specialization{
				{ID: 101, CategoryID: 1, Name: "Consultatie generala", SuggestedDurationMinutes: 30, DisplayOrder: 1},
				{ID: 102, CategoryID: 1, Name: "Vaccinare", SuggestedDurationMinutes: 20, DisplayOrder: 2},
				{ID: 103, CategoryID: 1, Name: "Deparazitare", SuggestedDurationMinutes: 15, DisplayOrder: 3},
				{ID: 104, CategoryID: 1, Name: "Microcipare", SuggestedDurationMinutes: 15, DisplayOrder: 4},
			},
		},
		{
			ID: 2, Name: "Chirurgie", Description: "Surgical procedures", Icon: "scalpel", DisplayOrder: 2,
			Specializations: []Specialization{
				{ID: 201, CategoryID: 2, Name: "Sterilizare", SuggestedDurationMinutes: 90, DisplayOrder: 1},
				{ID: 202, CategoryID: 2, Name: "Chirurgie de tesuturi moi", SuggestedDurationMinutes: 120, DisplayOrder: 2},
				{ID: 203, CategoryID: 2, Name: "Chirurgie ortopedica", SuggestedDurationMinutes: 180, DisplayOrder: 3},
			},
		},
		{
			ID: 3, Name: "Diagnostic imagistic", Description: "Imaging and laboratory", Icon: "xray", DisplayOrder: 3,
			Specializations: []Specialization{
				{ID: 301, CategoryID: 3, Name: "Ecografie", SuggestedDurationMinutes: 30, DisplayOrder: 1},
				{ID: 302, CategoryID: 3, Name: "Radiografie", SuggestedDurationMinutes: 30, DisplayOrder: 2},
				{ID: 303, CategoryID: 3, Name: "Analize de laborator", SuggestedDurationMinutes: 20, DisplayOrder: 3},
			},
		},
		{
			ID: 4, Name: "Stomatologie", Description: "Dental care", Icon: "tooth", DisplayOrder: 4,
			Specializations: []Specialization{
				{ID: 401, CategoryID: 4, Name: "Detartraj", SuggestedDurationMinutes: 60, DisplayOrder: 1},
				{ID: 402, CategoryID: 4, Name: "Extractii dentare", SuggestedDurationMinutes: 60, DisplayOrder: 2},
			},
		},
		{
			// No predefined specializations; clinics add custom entries.
			ID: 5, Name: "Servicii la domiciliu", Description: "Home visits", Icon: "home", DisplayOrder: 5,
		},
	}
}

// SeedTemplates returns pricing templates matching the seed catalog.
func SeedTemplates() []ServiceTemplate {
	return []ServiceTemplate{
		{ID: 1, SpecializationID: 101, Name: "Consultatie generala", PriceMin: 80, PriceMax: 150, DurationMinutes: 30},
		{ID: 2, SpecializationID: 102, Name: "Vaccinare polivalenta", PriceMin: 100, PriceMax: 180, DurationMinutes: 20},
		{ID: 3, SpecializationID: 201, Name: "Sterilizare pisica", PriceMin: 250, PriceMax: 450, DurationMinutes: 90},
		{ID: 4, SpecializationID: 301, Name: "Ecografie abdominala", PriceMin: 120, PriceMax: 250, DurationMinutes: 30},
	}
}
