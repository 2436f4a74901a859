package company

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows company listings.
type ListFilter struct {
	CountyCode string
	ClinicType string
	Status     string
	Query      string // case-insensitive substring match on name
	Limit      int
	Offset     int
}

// Repository persists companies, their services and photo records.
type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context, filter ListFilter) ([]Company, error)
	Update(ctx context.Context, c *Company) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetLogo(ctx context.Context, id, logoKey string) error
	Delete(ctx context.Context, id string) error

	AddService(ctx context.Context, s *Service) error
	ListServices(ctx context.Context, companyID string) ([]Service, error)
	DeleteService(ctx context.Context, companyID, serviceID string) error

	AddPhoto(ctx context.Context, p *Photo) error
	ListPhotos(ctx context.Context, companyID string) ([]Photo, error)
	CountPhotos(ctx context.Context, companyID string) (int, error)
}

// InMemoryRepository is a map-backed Repository for tests and local runs.
type InMemoryRepository struct {
	mu        sync.RWMutex
	companies map[string]Company
	services  map[string][]Service
	photos    map[string][]Photo
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		companies: make(map[string]Company),
		services:  make(map[string][]Service),
		photos:    make(map[string][]Photo),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, c *Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.companies[c.ID] = *c
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return &c, nil
}

func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Company
	for _, c := range r.companies {
		if filter.CountyCode != "" && c.CountyCode != filter.CountyCode {
			continue
		}
		if filter.ClinicType != "" && c.ClinicType != filter.ClinicType {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Update(_ context.Context, c *Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[c.ID]; !ok {
		return ErrCompanyNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	r.companies[c.ID] = *c
	return nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[id]
	if !ok {
		return ErrCompanyNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	r.companies[id] = c
	return nil
}

func (r *InMemoryRepository) SetLogo(_ context.Context, id, logoKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[id]
	if !ok {
		return ErrCompanyNotFound
	}
	c.LogoKey = logoKey
	c.UpdatedAt = time.Now().UTC()
	r.companies[id] = c
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(r.companies, id)
	delete(r.services, id)
	delete(r.photos, id)
	return nil
}

func (r *InMemoryRepository) AddService(_ context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[s.CompanyID]; !ok {
		return ErrCompanyNotFound
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	r.services[s.CompanyID] = append(r.services[s.CompanyID], *s)
	return nil
}

func (r *InMemoryRepository) ListServices(_ context.Context, companyID string) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Service, len(r.services[companyID]))
	copy(out, r.services[companyID])
	return out, nil
}

func (r *InMemoryRepository) DeleteService(_ context.Context, companyID, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	services := r.services[companyID]
	for i, s := range services {
		if s.ID == serviceID {
			r.services[companyID] = append(services[:i], services[i+1:]...)
			return nil
		}
	}
	return ErrServiceNotFound
}

func (r *InMemoryRepository) AddPhoto(_ context.Context, p *Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[p.CompanyID]; !ok {
		return ErrCompanyNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	p.Position = len(r.photos[p.CompanyID]) + 1
	r.photos[p.CompanyID] = append(r.photos[p.CompanyID], *p)
	return nil
}

func (r *InMemoryRepository) ListPhotos(_ context.Context, companyID string) ([]Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Photo, len(r.photos[companyID]))
	copy(out, r.photos[companyID])
	return out, nil
}

func (r *InMemoryRepository) CountPhotos(_ context.Context, companyID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.photos[companyID]), nil
}
