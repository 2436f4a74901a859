// Package reviews stores pet-owner reviews of registered clinics.
package reviews

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when the review id does not exist
var ErrReviewNotFound = errors.New("review not found")

// Review is one rating left for a company.
type Review struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary aggregates a company's reviews.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// CreateReviewRequest is the review submission payload.
type CreateReviewRequest struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// Validate checks the review payload.
func (r *CreateReviewRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.AuthorName) == "" {
		errs["author_name"] = "author name is required"
	}
	if r.Rating < 1 || r.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}
	if utf8.RuneCountInString(r.Comment) > 2000 {
		errs["comment"] = "comment must be at most 2000 characters"
	}
	return errs
}

// Repository persists reviews.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	ListByCompany(ctx context.Context, companyID string) ([]Review, error)
	Summary(ctx context.Context, companyID string) (*RatingSummary, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a map-backed Repository for tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]Review
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{reviews: make(map[string]Review)}
}

func (r *InMemoryRepository) Create(_ context.Context, rv *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	rv.CreatedAt = time.Now().UTC()
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *InMemoryRepository) ListByCompany(_ context.Context, companyID string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Review
	for _, rv := range r.reviews {
		if rv.CompanyID == companyID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Summary(_ context.Context, companyID string) (*RatingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum, count := 0, 0
	for _, rv := range r.reviews {
		if rv.CompanyID == companyID {
			sum += rv.Rating
			count++
		}
	}
	s := &RatingSummary{Count: count}
	if count > 0 {
		s.Average = float64(sum) / float64(count)
	}
	return s, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}
