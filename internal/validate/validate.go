// Package validate holds the field-level format checks used by the
// registration wizard. All functions are pure and re-entrant.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// CompanyNameMin and CompanyNameMax bound the clinic display name.
	CompanyNameMin = 3
	CompanyNameMax = 100
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneIntlRe  = regexp.MustCompile(`^\+40\d{9}$`)
	phoneLocalRe = regexp.MustCompile(`^07\d{8}$`)
	postalRe     = regexp.MustCompile(`^\d{6}$`)
	cuiRe        = regexp.MustCompile(`^(RO)?\d{2,10}$`)
)

// CompanyName checks the clinic display name length (3-100 characters).
func CompanyName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= CompanyNameMin && n <= CompanyNameMax
}

// Email performs an RFC-light format check.
func Email(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// RomanianPhone accepts +40 followed by 9 digits or local 07 followed by 8 digits.
func RomanianPhone(phone string) bool {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	return phoneIntlRe.MatchString(phone) || phoneLocalRe.MatchString(phone)
}

// RomanianPostalCode requires exactly 6 digits.
func RomanianPostalCode(code string) bool {
	return postalRe.MatchString(strings.TrimSpace(code))
}

// CUI checks a Romanian tax id: optional RO prefix followed by 2-10 digits.
func CUI(cui string) bool {
	return cuiRe.MatchString(strings.ToUpper(strings.TrimSpace(cui)))
}

// WebsiteURL accepts absolute http(s) URLs with a host.
func WebsiteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// MinuteOfDay parses "HH:MM" in 24-hour format into minutes since midnight.
func MinuteOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

// TimeRange requires both bounds set and close strictly after open,
// compared by minute of day.
func TimeRange(open, close string) bool {
	o, err := MinuteOfDay(open)
	if err != nil {
		return false
	}
	c, err := MinuteOfDay(close)
	if err != nil {
		return false
	}
	return c > o
}

// PriceRange requires non-negative bounds with max >= min. Equal bounds
// express a fixed price.
func PriceRange(min, max float64) bool {
	return min >= 0 && max >= min
}

const (
	// PhotoCountMin and PhotoCountMax bound the gallery size required for
	// final submission.
	PhotoCountMin = 4
	PhotoCountMax = 10
)

// PhotoCount checks the 4-10 gallery photo requirement.
func PhotoCount(n int) bool {
	return n >= PhotoCountMin && n <= PhotoCountMax
}
