// Package appointments handles bookings made by pet owners at registered
// clinics.
package appointments

import (
	"strings"
	"time"

	"github.com/vetfinder/vetfinder-backend/internal/validate"
)

// Appointment statuses and their allowed transitions:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Appointment is one booking at a clinic.
type Appointment struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	ServiceID string `json:"service_id,omitempty"`

	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone"`
	PetName    string `json:"pet_name"`
	PetSpecies string `json:"pet_species,omitempty"`

	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAppointmentRequest is the booking payload.
type CreateAppointmentRequest struct {
	ServiceID       string    `json:"service_id,omitempty"`
	OwnerName       string    `json:"owner_name"`
	OwnerEmail      string    `json:"owner_email"`
	OwnerPhone      string    `json:"owner_phone"`
	PetName         string    `json:"pet_name"`
	PetSpecies      string    `json:"pet_species,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
}

// Validate checks the booking payload. Field names match JSON field names.
func (r *CreateAppointmentRequest) Validate(now time.Time) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.OwnerName) == "" {
		errs["owner_name"] = "owner name is required"
	}
	if !validate.Email(r.OwnerEmail) {
		errs["owner_email"] = "invalid email address"
	}
	if !validate.RomanianPhone(r.OwnerPhone) {
		errs["owner_phone"] = "invalid Romanian phone number"
	}
	if strings.TrimSpace(r.PetName) == "" {
		errs["pet_name"] = "pet name is required"
	}
	if !r.StartsAt.After(now) {
		errs["starts_at"] = "appointment must be in the future"
	}
	if r.DurationMinutes <= 0 {
		errs["duration_minutes"] = "duration must be positive"
	}
	return errs
}
