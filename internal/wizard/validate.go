package wizard

import (
	"strconv"
	"strings"

	"github.com/vetfinder/vetfinder-backend/internal/geo"
	"github.com/vetfinder/vetfinder-backend/internal/validate"
)

// validateStep returns per-field messages for one step, keyed by the step's
// JSON field names. An empty map means the step gate is open.
func validateStep(d *Draft, step int) map[string]string {
	switch step {
	case StepBasicInfo:
		return validateStep1(&d.Step1)
	case StepLocation:
		return validateStep2(&d.Step2)
	case StepProfile:
		return validateStep3(&d.Step3)
	case StepPricing:
		return validateStep4(&d.Step4)
	default:
		return map[string]string{"step": "invalid step"}
	}
}

func validateStep1(s *Step1) map[string]string {
	errs := make(map[string]string)
	if !validate.CompanyName(s.Name) {
		errs["name"] = "name must be between 3 and 100 characters"
	}
	if !validate.Email(s.Email) {
		errs["email"] = "invalid email address"
	}
	if !validate.RomanianPhone(s.Phone) {
		errs["phone"] = "invalid Romanian phone number"
	}
	if strings.TrimSpace(s.CUI) != "" && !validate.CUI(s.CUI) {
		errs["cui"] = "invalid CUI"
	}
	if strings.TrimSpace(s.WebsiteURL) != "" && !validate.WebsiteURL(s.WebsiteURL) {
		errs["website_url"] = "invalid website URL"
	}
	return errs
}

func validateStep2(s *Step2) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(s.Street) == "" {
		errs["street"] = "street is required"
	}
	if strings.TrimSpace(s.Locality) == "" {
		errs["locality"] = "locality is required"
	}
	if _, ok := geo.CountyByCode(s.CountyCode); !ok {
		errs["county_code"] = "unknown county"
	}
	if !validate.RomanianPostalCode(s.PostalCode) {
		errs["postal_code"] = "postal code must be exactly 6 digits"
	}
	openDays := 0
	for day, msg := range s.OpeningHours.Validate() {
		errs["opening_hours."+day] = msg
	}
	for _, day := range s.OpeningHours.Days() {
		if day.Hours != nil {
			openDays++
		}
	}
	if openDays == 0 {
		errs["opening_hours"] = "at least one open day is required"
	}
	return errs
}

func validateStep3(s *Step3) map[string]string {
	errs := make(map[string]string)
	valid := false
	for _, t := range []string{"cabinet", "clinica", "spital", "mobil"} {
		if s.ClinicType == t {
			valid = true
			break
		}
	}
	if !valid {
		errs["clinic_type"] = "invalid clinic type"
	}
	if len(s.Selection.SpecializationIDs) == 0 {
		errs["selection"] = "select at least one specialization"
	}
	return errs
}

func validateStep4(s *Step4) map[string]string {
	errs := make(map[string]string)
	if len(s.Entries) == 0 {
		errs["entries"] = "at least one service is required"
	}
	for i, e := range s.Entries {
		prefix := "entries." + strconv.Itoa(i) + "."
		if strings.TrimSpace(e.Name) == "" {
			errs[prefix+"name"] = "service name is required"
		}
		if !validate.PriceRange(e.PriceMin, e.PriceMax) {
			errs[prefix+"price_max"] = "max price must be >= min price and both non-negative"
		}
		if e.DurationMinutes <= 0 {
			errs[prefix+"duration_minutes"] = "duration must be positive"
		}
	}
	if !validate.PhotoCount(len(s.PhotoKeys)) {
		errs["photos"] = "between 4 and 10 photos are required"
	}
	return errs
}
