// Package wizard implements the four-step company registration flow: drafts
// held server-side in a key/value store, per-step validation gates, the
// category/specialization picker and the final submission pipeline.
package wizard

import (
	"time"

	"github.com/vetfinder/vetfinder-backend/internal/company"
	"github.com/vetfinder/vetfinder-backend/internal/selection"
)

// Step numbers. The flow is strictly linear.
const (
	StepBasicInfo = 1
	StepLocation  = 2
	StepProfile   = 3
	StepPricing   = 4
)

// Step1 holds the basic company info collected first.
type Step1 struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	CUI        string `json:"cui,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// Step2 holds the address and opening hours.
type Step2 struct {
	Street     string   `json:"street"`
	Locality   string   `json:"locality"`
	CountyCode string   `json:"county_code"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	OpeningHours company.OpeningHours `json:"opening_hours"`
}

// Step3 holds the clinic type and the service selection.
type Step3 struct {
	ClinicType string             `json:"clinic_type"`
	Selection  selection.Snapshot `json:"selection"`
}

// PricingEntry is one row of the pricing table on step 4. Entries derived
// from selected specializations carry the specialization id; custom entries
// carry only a free-text name.
type PricingEntry struct {
	SpecializationID *int64  `json:"specialization_id,omitempty"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	PriceMin         float64 `json:"price_min"`
	PriceMax         float64 `json:"price_max"`
	DurationMinutes  int     `json:"duration_minutes"`
	IsCustom         bool    `json:"is_custom"`
}

// Step4 holds the pricing table, photos and description.
type Step4 struct {
	Entries     []PricingEntry `json:"entries"`
	PhotoKeys   []string       `json:"photo_keys"`
	LogoKey     string         `json:"logo_key,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Draft is the full wizard state for one registration in progress.
type Draft struct {
	ID          string    `json:"id"`
	CurrentStep int       `json:"current_step"`
	Step1       Step1     `json:"step1"`
	Step2       Step2     `json:"step2"`
	Step3       Step3     `json:"step3"`
	Step4       Step4     `json:"step4"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Step1Patch carries partial updates to step 1. Nil fields are left as-is.
type Step1Patch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	CUI        *string `json:"cui,omitempty"`
	WebsiteURL *string `json:"website_url,omitempty"`
}

func (p *Step1Patch) apply(s *Step1) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.CUI != nil {
		s.CUI = *p.CUI
	}
	if p.WebsiteURL != nil {
		s.WebsiteURL = *p.WebsiteURL
	}
}

// Step2Patch carries partial updates to step 2.
type Step2Patch struct {
	Street       *string               `json:"street,omitempty"`
	Locality     *string               `json:"locality,omitempty"`
	CountyCode   *string               `json:"county_code,omitempty"`
	PostalCode   *string               `json:"postal_code,omitempty"`
	Latitude     *float64              `json:"latitude,omitempty"`
	Longitude    *float64              `json:"longitude,omitempty"`
	OpeningHours *company.OpeningHours `json:"opening_hours,omitempty"`
}

func (p *Step2Patch) apply(s *Step2) {
	if p.Street != nil {
		s.Street = *p.Street
	}
	if p.Locality != nil {
		s.Locality = *p.Locality
	}
	if p.CountyCode != nil {
		s.CountyCode = *p.CountyCode
	}
	if p.PostalCode != nil {
		s.PostalCode = *p.PostalCode
	}
	if p.Latitude != nil {
		s.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		s.Longitude = p.Longitude
	}
	if p.OpeningHours != nil {
		s.OpeningHours = *p.OpeningHours
	}
}

// Step3Patch carries partial updates to step 3. The selection is mutated
// through the dedicated toggle endpoints, never patched directly.
type Step3Patch struct {
	ClinicType *string `json:"clinic_type,omitempty"`
}

func (p *Step3Patch) apply(s *Step3) {
	if p.ClinicType != nil {
		s.ClinicType = *p.ClinicType
	}
}

// Step4Patch carries partial updates to step 4. Entries replace the whole
// pricing table when present; reconciliation keeps them aligned with the
// selection afterwards.
type Step4Patch struct {
	Entries     *[]PricingEntry `json:"entries,omitempty"`
	Description *string         `json:"description,omitempty"`
}

func (p *Step4Patch) apply(s *Step4) {
	if p.Entries != nil {
		s.Entries = *p.Entries
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
}
