package company

import (
	"context"
	"strings"

	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Notifier sends the registration-complete email. Implemented by the notify
// package; nil disables notifications.
type Notifier interface {
	SendRegistrationComplete(ctx context.Context, toEmail, companyName string) error
}

// Manager implements the company registration pipeline and profile management
// on top of a Repository.
type Manager struct {
	repo     Repository
	notifier Notifier
	logger   *logging.Logger
}

// NewManager creates a company manager.
func NewManager(repo Repository, notifier Notifier, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{repo: repo, notifier: notifier, logger: logger}
}

// CreateCompany validates and persists a new company. New companies start in
// the incomplete status and are activated once services and logo are attached.
func (m *Manager) CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &Company{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		CUI:          strings.TrimSpace(req.CUI),
		WebsiteURL:   strings.TrimSpace(req.WebsiteURL),
		Description:  strings.TrimSpace(req.Description),
		ClinicType:   req.ClinicType,
		Street:       strings.TrimSpace(req.Street),
		Locality:     strings.TrimSpace(req.Locality),
		CountyCode:   req.CountyCode,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OpeningHours: req.OpeningHours,
		Status:       StatusIncomplete,
	}
	if err := m.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	for _, key := range req.PhotoKeys {
		if err := m.repo.AddPhoto(ctx, &Photo{CompanyID: c.ID, Key: key}); err != nil {
			return nil, err
		}
	}

	m.logger.Info("company created", "company_id", c.ID, "name", c.Name)
	return c, nil
}

// BulkCreateServices validates and inserts all pricing rows for a company.
// Validation runs over the whole list before any insert, so a bad row rejects
// the entire batch.
func (m *Manager) BulkCreateServices(ctx context.Context, companyID string, inputs []ServicePricingInput) ([]Service, error) {
	if len(inputs) == 0 {
		return nil, ErrNoServices
	}
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, err
		}
	}

	if _, err := m.repo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	services := make([]Service, 0, len(inputs))
	for _, in := range inputs {
		svc := Service{
			CompanyID:        companyID,
			SpecializationID: in.SpecializationID,
			CategoryID:       in.CategoryID,
			Name:             strings.TrimSpace(in.Name),
			PriceMin:         in.PriceMin,
			PriceMax:         in.PriceMax,
			DurationMinutes:  in.DurationMinutes,
			IsCustom:         in.IsCustom,
		}
		if err := m.repo.AddService(ctx, &svc); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	m.logger.Info("services created", "company_id", companyID, "count", len(services))
	return services, nil
}

// AttachLogo records the logo storage key on the company.
func (m *Manager) AttachLogo(ctx context.Context, companyID, logoKey string) error {
	return m.repo.SetLogo(ctx, companyID, logoKey)
}

// ActivateCompany flips the company to active and sends the
// registration-complete email. A notification failure is logged but does not
// fail the activation.
func (m *Manager) ActivateCompany(ctx context.Context, companyID string) error {
	if err := m.repo.UpdateStatus(ctx, companyID, StatusActive); err != nil {
		return err
	}

	if m.notifier != nil {
		c, err := m.repo.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if err := m.notifier.SendRegistrationComplete(ctx, c.Email, c.Name); err != nil {
			m.logger.Error("failed to send registration email", "error", err, "company_id", companyID)
		}
	}
	return nil
}

// AddPhoto records one gallery photo, enforcing the 10-photo ceiling.
func (m *Manager) AddPhoto(ctx context.Context, companyID, key string) (*Photo, error) {
	count, err := m.repo.CountPhotos(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if count >= 10 {
		return nil, ErrTooManyPhotos
	}

	p := &Photo{CompanyID: companyID, Key: key}
	if err := m.repo.AddPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
