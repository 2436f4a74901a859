package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vetfinder/vetfinder-backend/internal/catalog"
	"github.com/vetfinder/vetfinder-backend/internal/company"
	"github.com/vetfinder/vetfinder-backend/internal/geo"
	"github.com/vetfinder/vetfinder-backend/internal/observability/metrics"
	"github.com/vetfinder/vetfinder-backend/internal/selection"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Registrar runs the registration pipeline. Implemented by company.Manager.
type Registrar interface {
	CreateCompany(ctx context.Context, req *company.CreateCompanyRequest) (*company.Company, error)
	BulkCreateServices(ctx context.Context, companyID string, inputs []company.ServicePricingInput) ([]company.Service, error)
	AttachLogo(ctx context.Context, companyID, logoKey string) error
	ActivateCompany(ctx context.Context, companyID string) error
}

// Geocoder resolves addresses to coordinates. Implemented by geo.Geocoder.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinates, error)
}

// Submission outcome statuses.
const (
	SubmitCompleted  = "completed"
	SubmitIncomplete = "incomplete"
)

// SubmitResult reports where the submission pipeline got to.
type SubmitResult struct {
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

// Service drives wizard drafts: step updates, validation gates, selection
// toggles, pricing reconciliation and the final submission.
type Service struct {
	drafts    DraftStore
	catalog   catalog.Repository
	registrar Registrar
	geocoder  Geocoder
	metrics   *metrics.WizardMetrics
	tracer    trace.Tracer
	logger    *logging.Logger
}

// NewService creates the wizard service. geocoder and metrics may be nil.
func NewService(drafts DraftStore, cat catalog.Repository, registrar Registrar, geocoder Geocoder, m *metrics.WizardMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		drafts:    drafts,
		catalog:   cat,
		registrar: registrar,
		geocoder:  geocoder,
		metrics:   m,
		tracer:    otel.Tracer("vetfinder/wizard"),
		logger:    logger,
	}
}

// StartDraft creates an empty draft on step 1.
func (s *Service) StartDraft(ctx context.Context) (*Draft, error) {
	now := time.Now().UTC()
	d := &Draft{
		ID:          uuid.NewString(),
		CurrentStep: StepBasicInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	s.metrics.ObserveDraftStarted()
	s.logger.Info("draft started", "draft_id", d.ID)
	return d, nil
}

// GetDraft loads a draft by id.
func (s *Service) GetDraft(ctx context.Context, id string) (*Draft, error) {
	return s.drafts.Get(ctx, id)
}

// DeleteDraft discards a draft.
func (s *Service) DeleteDraft(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}

// UpdateStep merges a partial payload into one step. Only the current step
// and steps already passed can be edited.
func (s *Service) UpdateStep(ctx context.Context, id string, step int, raw json.RawMessage) (*Draft, error) {
	if step < StepBasicInfo || step > StepPricing {
		return nil, ErrInvalidStep
	}

	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if step > d.CurrentStep {
		return nil, ErrStepNotReached
	}

	switch step {
	case StepBasicInfo:
		var p Step1Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		p.apply(&d.Step1)
	case StepLocation:
		var p Step2Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		p.apply(&d.Step2)
	case StepProfile:
		var p Step3Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		p.apply(&d.Step3)
	case StepPricing:
		var p Step4Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		p.apply(&d.Step4)
	}

	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ToggleSpecialization flips one specialization in the draft's selection and
// reconciles the pricing table.
func (s *Service) ToggleSpecialization(ctx context.Context, id string, specID int64) (*Draft, error) {
	return s.mutateSelection(ctx, id, func(sel *selection.Selection) error {
		return sel.ToggleSpecialization(specID)
	})
}

// ToggleCategory selects or deselects every specialization in the category
// and reconciles the pricing table.
func (s *Service) ToggleCategory(ctx context.Context, id string, categoryID int64) (*Draft, error) {
	return s.mutateSelection(ctx, id, func(sel *selection.Selection) error {
		return sel.ToggleAllInCategory(categoryID)
	})
}

// ToggleExpansion flips a category group open or closed. Pure presentation
// state, so no pricing reconciliation.
func (s *Service) ToggleExpansion(ctx context.Context, id string, categoryID int64) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx, _, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	sel := selection.Restore(idx, d.Step3.Selection)
	sel.ToggleExpansion(categoryID)
	d.Step3.Selection = sel.Snapshot()

	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) mutateSelection(ctx context.Context, id string, mutate func(*selection.Selection) error) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx, templates, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	sel := selection.Restore(idx, d.Step3.Selection)
	if err := mutate(sel); err != nil {
		return nil, err
	}
	d.Step3.Selection = sel.Snapshot()
	d.Step4.Entries = syncPricing(d.Step4.Entries, sel.SpecializationIDs(), idx, templates)

	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// NextResult is the outcome of a step advance attempt.
type NextResult struct {
	Draft  *Draft            `json:"draft"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Next validates the current step and advances on success. On validation
// failure the draft stays put and the field errors are returned.
func (s *Service) Next(ctx context.Context, id string) (*NextResult, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := validateStep(d, d.CurrentStep); len(errs) > 0 {
		s.metrics.ObserveValidationFailure(strconv.Itoa(d.CurrentStep))
		return &NextResult{Draft: d, Errors: errs}, nil
	}

	fromStep := d.CurrentStep
	if d.CurrentStep == StepLocation {
		s.geocodeDraft(ctx, d)
	}
	if d.CurrentStep < StepPricing {
		d.CurrentStep++
	}

	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	s.metrics.ObserveStepAdvance(strconv.Itoa(fromStep))
	return &NextResult{Draft: d}, nil
}

// Back moves to the previous step. Never validates and never loses data.
func (s *Service) Back(ctx context.Context, id string) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.CurrentStep > StepBasicInfo {
		d.CurrentStep--
		d.UpdatedAt = time.Now().UTC()
		if err := s.drafts.Put(ctx, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// geocodeDraft fills in coordinates when the user has not pinned them. A
// geocoding failure never blocks the step advance.
func (s *Service) geocodeDraft(ctx context.Context, d *Draft) {
	if s.geocoder == nil || (d.Step2.Latitude != nil && d.Step2.Longitude != nil) {
		return
	}

	query := geo.NormalizeAddress(d.Step2.Street, d.Step2.Locality, d.Step2.CountyCode)
	start := time.Now()
	coords, err := s.geocoder.Geocode(ctx, query)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		status := "error"
		if errors.Is(err, geo.ErrAddressNotFound) {
			status = "not_found"
		}
		s.metrics.ObserveGeocodeLatency(status, elapsed)
		s.logger.Warn("geocoding failed", "draft_id", d.ID, "error", err)
		return
	}
	s.metrics.ObserveGeocodeLatency("found", elapsed)
	d.Step2.Latitude = &coords.Latitude
	d.Step2.Longitude = &coords.Longitude
}

// Submit validates every step and runs the registration pipeline: create the
// company, bulk-create its services, attach the logo, then activate. The
// calls run sequentially with no rollback; if a later call fails the company
// stays in the incomplete status and the draft is kept so the failure can be
// reconciled.
func (s *Service) Submit(ctx context.Context, id string) (*SubmitResult, map[int]map[string]string, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.submit",
		trace.WithAttributes(attribute.String("draft.id", id)))
	defer span.End()

	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d.CurrentStep != StepPricing {
		return nil, nil, ErrNotOnFinalStep
	}

	stepErrs := make(map[int]map[string]string)
	for step := StepBasicInfo; step <= StepPricing; step++ {
		if errs := validateStep(d, step); len(errs) > 0 {
			stepErrs[step] = errs
		}
	}
	if len(stepErrs) > 0 {
		s.metrics.ObserveSubmission("rejected")
		return nil, stepErrs, nil
	}

	start := time.Now()
	result, err := s.runPipeline(ctx, d)
	s.metrics.ObserveSubmitLatency(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission("failed")
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.String("company.id", result.CompanyID),
		attribute.String("submit.status", result.Status),
	)
	s.metrics.ObserveSubmission(result.Status)

	if result.Status == SubmitCompleted {
		if err := s.drafts.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to delete submitted draft", "draft_id", id, "error", err)
		}
	}
	return result, nil, nil
}

func (s *Service) runPipeline(ctx context.Context, d *Draft) (*SubmitResult, error) {
	req := buildCreateRequest(d)

	c, err := s.registrar.CreateCompany(ctx, req)
	if err != nil {
		// Nothing was created; the draft stays valid for a retry.
		return nil, fmt.Errorf("create company: %w", err)
	}

	inputs := make([]company.ServicePricingInput, 0, len(d.Step4.Entries))
	for _, e := range d.Step4.Entries {
		inputs = append(inputs, company.ServicePricingInput{
			SpecializationID: e.SpecializationID,
			CategoryID:       e.CategoryID,
			Name:             e.Name,
			PriceMin:         e.PriceMin,
			PriceMax:         e.PriceMax,
			DurationMinutes:  e.DurationMinutes,
			IsCustom:         e.IsCustom,
		})
	}
	if _, err := s.registrar.BulkCreateServices(ctx, c.ID, inputs); err != nil {
		s.logger.Error("submission stalled after company creation", "company_id", c.ID, "error", err)
		return &SubmitResult{CompanyID: c.ID, Status: SubmitIncomplete, Detail: "services could not be created"}, nil
	}

	if d.Step4.LogoKey != "" {
		if err := s.registrar.AttachLogo(ctx, c.ID, d.Step4.LogoKey); err != nil {
			s.logger.Error("submission stalled before logo attach", "company_id", c.ID, "error", err)
			return &SubmitResult{CompanyID: c.ID, Status: SubmitIncomplete, Detail: "logo could not be attached"}, nil
		}
	}

	if err := s.registrar.ActivateCompany(ctx, c.ID); err != nil {
		s.logger.Error("submission stalled before activation", "company_id", c.ID, "error", err)
		return &SubmitResult{CompanyID: c.ID, Status: SubmitIncomplete, Detail: "company could not be activated"}, nil
	}

	s.logger.Info("registration completed", "company_id", c.ID, "draft_id", d.ID)
	return &SubmitResult{CompanyID: c.ID, Status: SubmitCompleted}, nil
}

func buildCreateRequest(d *Draft) *company.CreateCompanyRequest {
	return &company.CreateCompanyRequest{
		Name:         d.Step1.Name,
		Email:        d.Step1.Email,
		Phone:        d.Step1.Phone,
		CUI:          d.Step1.CUI,
		WebsiteURL:   d.Step1.WebsiteURL,
		Description:  d.Step4.Description,
		ClinicType:   d.Step3.ClinicType,
		Street:       d.Step2.Street,
		Locality:     d.Step2.Locality,
		CountyCode:   d.Step2.CountyCode,
		PostalCode:   d.Step2.PostalCode,
		Latitude:     d.Step2.Latitude,
		Longitude:    d.Step2.Longitude,
		OpeningHours: d.Step2.OpeningHours,
		PhotoKeys:    d.Step4.PhotoKeys,
	}
}

// AddPhotoKey appends one uploaded gallery photo key to the draft.
func (s *Service) AddPhotoKey(ctx context.Context, id, key string) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Step4.PhotoKeys = append(d.Step4.PhotoKeys, key)
	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SetLogoKey records the uploaded logo key on the draft.
func (s *Service) SetLogoKey(ctx context.Context, id, key string) (*Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Step4.LogoKey = key
	d.UpdatedAt = time.Now().UTC()
	if err := s.drafts.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) loadCatalog(ctx context.Context) (*catalog.Index, []catalog.ServiceTemplate, error) {
	cats, err := s.catalog.ListCategories(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("wizard: load catalog: %w", err)
	}
	templates, err := s.catalog.ListTemplates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("wizard: load templates: %w", err)
	}
	return catalog.NewIndex(cats), templates, nil
}
