// Package company holds the clinic profile domain: the company record
// created by the registration wizard plus its services and photos.
package company

import (
	"strings"
	"time"

	"github.com/vetfinder/vetfinder-backend/internal/validate"
)

// Company status values. A company is created incomplete and activated only
// after its services and logo have been attached.
const (
	StatusIncomplete = "incomplete"
	StatusActive     = "active"
)

// Clinic types accepted at registration.
var ClinicTypes = []string{"cabinet", "clinica", "spital", "mobil"}

// DayHours represents the opening hours for a single day.
// Nil means the clinic is closed that day.
type DayHours struct {
	Open  string `json:"open"`  // "09:00" in 24-hour format
	Close string `json:"close"` // "18:00" in 24-hour format
}

// OpeningHours maps day names to their hours.
type OpeningHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// Days returns the seven day slots in week order with their names.
func (h *OpeningHours) Days() []struct {
	Name  string
	Hours *DayHours
} {
	return []struct {
		Name  string
		Hours *DayHours
	}{
		{"monday", h.Monday},
		{"tuesday", h.Tuesday},
		{"wednesday", h.Wednesday},
		{"thursday", h.Thursday},
		{"friday", h.Friday},
		{"saturday", h.Saturday},
		{"sunday", h.Sunday},
	}
}

// Validate checks every non-closed day: both bounds set, close strictly after
// open by minute of day. Returned map is keyed by day name.
func (h *OpeningHours) Validate() map[string]string {
	errs := make(map[string]string)
	for _, day := range h.Days() {
		if day.Hours == nil {
			continue
		}
		if day.Hours.Open == "" || day.Hours.Close == "" {
			errs[day.Name] = "both open and close times are required"
			continue
		}
		if !validate.TimeRange(day.Hours.Open, day.Hours.Close) {
			errs[day.Name] = "close time must be after open time"
		}
	}
	return errs
}

// Company is a veterinary clinic profile.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CUI         string `json:"cui,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Description string `json:"description,omitempty"`
	ClinicType  string `json:"clinic_type"`

	Street     string   `json:"street"`
	Locality   string   `json:"locality"`
	CountyCode string   `json:"county_code"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	OpeningHours OpeningHours `json:"opening_hours"`

	LogoKey string `json:"logo_key,omitempty"`
	Status  string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is one priced offering of a company. Non-custom services reference
// a catalog specialization; custom ones carry only a free-text name.
type Service struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"company_id"`
	SpecializationID *int64    `json:"specialization_id,omitempty"`
	CategoryID       *int64    `json:"category_id,omitempty"`
	Name             string    `json:"name"`
	PriceMin         float64   `json:"price_min"`
	PriceMax         float64   `json:"price_max"`
	DurationMinutes  int       `json:"duration_minutes"`
	IsCustom         bool      `json:"is_custom"`
	CreatedAt        time.Time `json:"created_at"`
}

// Photo is one gallery image stored in the photo store.
type Photo struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Key       string    `json:"key"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCompanyRequest is the assembled registration payload.
type CreateCompanyRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CUI         string `json:"cui,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Description string `json:"description,omitempty"`
	ClinicType  string `json:"clinic_type"`

	Street     string   `json:"street"`
	Locality   string   `json:"locality"`
	CountyCode string   `json:"county_code"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	OpeningHours OpeningHours `json:"opening_hours"`

	PhotoKeys []string `json:"photo_keys,omitempty"`
}

// Validate checks the assembled payload. Field names in the returned error
// match the JSON field names so clients can map messages inline.
func (r *CreateCompanyRequest) Validate() error {
	errs := make(map[string]string)

	if !validate.CompanyName(r.Name) {
		errs["name"] = "name must be between 3 and 100 characters"
	}
	if !validate.Email(r.Email) {
		errs["email"] = "invalid email address"
	}
	if !validate.RomanianPhone(r.Phone) {
		errs["phone"] = "invalid Romanian phone number"
	}
	if strings.TrimSpace(r.CUI) != "" && !validate.CUI(r.CUI) {
		errs["cui"] = "invalid CUI"
	}
	if strings.TrimSpace(r.WebsiteURL) != "" && !validate.WebsiteURL(r.WebsiteURL) {
		errs["website_url"] = "invalid website URL"
	}
	if !validClinicType(r.ClinicType) {
		errs["clinic_type"] = "invalid clinic type"
	}
	if strings.TrimSpace(r.Street) == "" {
		errs["street"] = "street is required"
	}
	if strings.TrimSpace(r.Locality) == "" {
		errs["locality"] = "locality is required"
	}
	if strings.TrimSpace(r.CountyCode) == "" {
		errs["county_code"] = "county is required"
	}
	if !validate.RomanianPostalCode(r.PostalCode) {
		errs["postal_code"] = "postal code must be exactly 6 digits"
	}
	for day, msg := range r.OpeningHours.Validate() {
		errs["opening_hours."+day] = msg
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validClinicType(t string) bool {
	for _, v := range ClinicTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ServicePricingInput is one row of the bulk service creation call.
type ServicePricingInput struct {
	SpecializationID *int64  `json:"specialization_id,omitempty"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	Name             string  `json:"service_name"`
	PriceMin         float64 `json:"price_min"`
	PriceMax         float64 `json:"price_max"`
	DurationMinutes  int     `json:"duration_minutes"`
	IsCustom         bool    `json:"is_custom"`
}

// Validate checks one pricing row.
func (s *ServicePricingInput) Validate() error {
	errs := make(map[string]string)
	if strings.TrimSpace(s.Name) == "" {
		errs["service_name"] = "service name is required"
	}
	if !validate.PriceRange(s.PriceMin, s.PriceMax) {
		errs["price_max"] = "max price must be >= min price and both non-negative"
	}
	if s.DurationMinutes <= 0 {
		errs["duration_minutes"] = "duration must be positive"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// UpdateCompanyRequest carries optional profile updates.
type UpdateCompanyRequest struct {
	Name         *string       `json:"name,omitempty"`
	Email        *string       `json:"email,omitempty"`
	Phone        *string       `json:"phone,omitempty"`
	WebsiteURL   *string       `json:"website_url,omitempty"`
	Description  *string       `json:"description,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
}
