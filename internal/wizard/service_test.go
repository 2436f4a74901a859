package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vetfinder/vetfinder-backend/internal/catalog"
	"github.com/vetfinder/vetfinder-backend/internal/company"
	"github.com/vetfinder/vetfinder-backend/internal/geo"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

type fakeRegistrar struct {
	created     *company.Company
	services    []company.ServicePricingInput
	logoKey     string
	activated   bool
	servicesErr error
	logoErr     error
	activateErr error
}

func (f *fakeRegistrar) CreateCompany(_ context.Context, req *company.CreateCompanyRequest) (*company.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.created = &company.Company{ID: "c-1", Name: req.Name, Email: req.Email, Status: company.StatusIncomplete}
	return f.created, nil
}

func (f *fakeRegistrar) BulkCreateServices(_ context.Context, companyID string, inputs []company.ServicePricingInput) ([]company.Service, error) {
	if f.servicesErr != nil {
		return nil, f.servicesErr
	}
	f.services = inputs
	return make([]company.Service, len(inputs)), nil
}

func (f *fakeRegistrar) AttachLogo(_ context.Context, _, logoKey string) error {
	if f.logoErr != nil {
		return f.logoErr
	}
	f.logoKey = logoKey
	return nil
}

func (f *fakeRegistrar) ActivateCompany(_ context.Context, _ string) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = true
	return nil
}

type fakeGeocoder struct {
	coords geo.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (geo.Coordinates, error) {
	f.calls++
	if f.err != nil {
		return geo.Coordinates{}, f.err
	}
	return f.coords, nil
}

func newTestService(registrar Registrar, geocoder Geocoder) *Service {
	repo := catalog.NewInMemoryRepository(catalog.SeedCategories(), catalog.SeedTemplates())
	return NewService(NewMemoryStore(0), repo, registrar, geocoder, nil, logging.Default())
}

func mustPatch(t *testing.T, svc *Service, id string, step int, payload string) *Draft {
	t.Helper()
	d, err := svc.UpdateStep(context.Background(), id, step, json.RawMessage(payload))
	if err != nil {
		t.Fatalf("update step %d: %v", step, err)
	}
	return d
}

func mustAdvance(t *testing.T, svc *Service, id string) *Draft {
	t.Helper()
	res, err := svc.Next(context.Background(), id)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected validation errors: %v", res.Errors)
	}
	return res.Draft
}

const (
	step1Payload = `{"name":"Clinica Anima","email":"contact@anima.ro","phone":"+40721234567","cui":"RO12345678"}`
	step2Payload = `{"street":"Strada Eminescu 10","locality":"Cluj-Napoca","county_code":"CJ","postal_code":"400001",
		"opening_hours":{"monday":{"open":"09:00","close":"18:00"}}}`
)

// fillDraft walks a draft to step 4 with valid data and returns its id.
func fillDraft(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()

	d, err := svc.StartDraft(ctx)
	if err != nil {
		t.Fatal(err)
	}
	id := d.ID

	mustPatch(t, svc, id, 1, step1Payload)
	mustAdvance(t, svc, id)
	mustPatch(t, svc, id, 2, step2Payload)
	mustAdvance(t, svc, id)
	mustPatch(t, svc, id, 3, `{"clinic_type":"clinica"}`)
	if _, err := svc.ToggleSpecialization(ctx, id, 101); err != nil {
		t.Fatal(err)
	}
	mustAdvance(t, svc, id)

	for i := 0; i < 4; i++ {
		if _, err := svc.AddPhotoKey(ctx, id, "drafts/"+id+"/p.jpg"); err != nil {
			t.Fatal(err)
		}
	}
	return id
}

func TestStartDraftBeginsOnStepOne(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)

	d, err := svc.StartDraft(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if d.CurrentStep != StepBasicInfo || d.ID == "" {
		t.Errorf("unexpected draft: %+v", d)
	}
}

func TestNextBlocksOnInvalidStep(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())

	// Two-character name trips the length rule.
	mustPatch(t, svc, d.ID, 1, `{"name":"Ab","email":"contact@anima.ro","phone":"+40721234567"}`)

	res, err := svc.Next(context.Background(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Errors["name"]; !ok {
		t.Errorf("expected name error, got %v", res.Errors)
	}
	if res.Draft.CurrentStep != StepBasicInfo {
		t.Errorf("expected draft held on step 1, got %d", res.Draft.CurrentStep)
	}
}

func TestUpdateStepBeyondCurrentRejected(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())

	if _, err := svc.UpdateStep(context.Background(), d.ID, 3, json.RawMessage(`{}`)); err != ErrStepNotReached {
		t.Errorf("expected ErrStepNotReached, got %v", err)
	}
	if _, err := svc.UpdateStep(context.Background(), d.ID, 7, json.RawMessage(`{}`)); err != ErrInvalidStep {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestBackNeverValidatesAndKeepsData(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())
	mustPatch(t, svc, d.ID, 1, step1Payload)
	mustAdvance(t, svc, d.ID)

	// Put garbage in step 2, then go back: allowed, data kept.
	mustPatch(t, svc, d.ID, 2, `{"street":"x"}`)
	back, err := svc.Back(context.Background(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if back.CurrentStep != StepBasicInfo {
		t.Errorf("expected step 1, got %d", back.CurrentStep)
	}
	if back.Step2.Street != "x" {
		t.Error("expected step 2 data preserved")
	}
}

func TestAdvancePastLocationGeocodes(t *testing.T) {
	geocoder := &fakeGeocoder{coords: geo.Coordinates{Latitude: 46.77, Longitude: 23.59}}
	svc := newTestService(&fakeRegistrar{}, geocoder)
	d, _ := svc.StartDraft(context.Background())
	mustPatch(t, svc, d.ID, 1, step1Payload)
	mustAdvance(t, svc, d.ID)
	mustPatch(t, svc, d.ID, 2, step2Payload)

	advanced := mustAdvance(t, svc, d.ID)
	if geocoder.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geocoder.calls)
	}
	if advanced.Step2.Latitude == nil || *advanced.Step2.Latitude != 46.77 {
		t.Errorf("expected latitude filled in, got %v", advanced.Step2.Latitude)
	}
}

func TestGeocodeFailureDoesNotBlockAdvance(t *testing.T) {
	geocoder := &fakeGeocoder{err: geo.ErrAddressNotFound}
	svc := newTestService(&fakeRegistrar{}, geocoder)
	d, _ := svc.StartDraft(context.Background())
	mustPatch(t, svc, d.ID, 1, step1Payload)
	mustAdvance(t, svc, d.ID)
	mustPatch(t, svc, d.ID, 2, step2Payload)

	advanced := mustAdvance(t, svc, d.ID)
	if advanced.CurrentStep != StepProfile {
		t.Errorf("expected advance despite geocode failure, got step %d", advanced.CurrentStep)
	}
	if advanced.Step2.Latitude != nil {
		t.Error("expected latitude left unset")
	}
}

func TestGeocodeSkippedWhenCoordinatesPinned(t *testing.T) {
	geocoder := &fakeGeocoder{coords: geo.Coordinates{Latitude: 1, Longitude: 1}}
	svc := newTestService(&fakeRegistrar{}, geocoder)
	d, _ := svc.StartDraft(context.Background())
	mustPatch(t, svc, d.ID, 1, step1Payload)
	mustAdvance(t, svc, d.ID)
	mustPatch(t, svc, d.ID, 2, `{"street":"Strada Eminescu 10","locality":"Cluj-Napoca","county_code":"CJ",
		"postal_code":"400001","latitude":46.0,"longitude":23.0,
		"opening_hours":{"monday":{"open":"09:00","close":"18:00"}}}`)

	mustAdvance(t, svc, d.ID)
	if geocoder.calls != 0 {
		t.Errorf("expected no geocode call, got %d", geocoder.calls)
	}
}

func TestToggleSpecializationSyncsPricing(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())

	updated, err := svc.ToggleSpecialization(context.Background(), d.ID, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Step3.Selection.SpecializationIDs) != 1 {
		t.Fatalf("expected one selected specialization, got %v", updated.Step3.Selection.SpecializationIDs)
	}
	if updated.Step3.Selection.CategoryIDs[0] != 1 {
		t.Errorf("expected parent category selected, got %v", updated.Step3.Selection.CategoryIDs)
	}
	if len(updated.Step4.Entries) != 1 || updated.Step4.Entries[0].Name != "Consultatie generala" {
		t.Errorf("expected pricing entry derived, got %+v", updated.Step4.Entries)
	}
}

func TestToggleCategorySelectsAll(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())

	updated, err := svc.ToggleCategory(context.Background(), d.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Step3.Selection.SpecializationIDs) != 3 {
		t.Errorf("expected 3 specializations, got %v", updated.Step3.Selection.SpecializationIDs)
	}
	if len(updated.Step4.Entries) != 3 {
		t.Errorf("expected 3 pricing entries, got %d", len(updated.Step4.Entries))
	}
}

func TestSubmitBeforeFinalStepRejected(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	d, _ := svc.StartDraft(context.Background())

	if _, _, err := svc.Submit(context.Background(), d.ID); err != ErrNotOnFinalStep {
		t.Errorf("expected ErrNotOnFinalStep, got %v", err)
	}
}

func TestSubmitCompletesAndDeletesDraft(t *testing.T) {
	registrar := &fakeRegistrar{}
	svc := newTestService(registrar, nil)
	id := fillDraft(t, svc)

	result, stepErrs, err := svc.Submit(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(stepErrs) > 0 {
		t.Fatalf("unexpected validation errors: %v", stepErrs)
	}
	if result.Status != SubmitCompleted || result.CompanyID != "c-1" {
		t.Errorf("unexpected result: %+v", result)
	}
	if !registrar.activated {
		t.Error("expected company activated")
	}
	if len(registrar.services) != 1 {
		t.Errorf("expected 1 service created, got %d", len(registrar.services))
	}

	if _, err := svc.GetDraft(context.Background(), id); err != ErrDraftNotFound {
		t.Errorf("expected draft deleted after completion, got %v", err)
	}
}

func TestSubmitPartialFailureKeepsDraft(t *testing.T) {
	registrar := &fakeRegistrar{servicesErr: errors.New("db down")}
	svc := newTestService(registrar, nil)
	id := fillDraft(t, svc)

	result, _, err := svc.Submit(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != SubmitIncomplete {
		t.Errorf("expected incomplete status, got %s", result.Status)
	}
	if result.CompanyID != "c-1" {
		t.Errorf("expected company id surfaced, got %q", result.CompanyID)
	}
	if registrar.activated {
		t.Error("company must not be activated after a stalled pipeline")
	}

	// Draft survives so the failure can be reconciled.
	if _, err := svc.GetDraft(context.Background(), id); err != nil {
		t.Errorf("expected draft kept, got %v", err)
	}
}

func TestSubmitRevalidatesEveryStep(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	id := fillDraft(t, svc)

	// Corrupt step 1 after the gate was passed.
	mustPatch(t, svc, id, 1, `{"email":"not-an-email"}`)

	result, stepErrs, err := svc.Submit(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if result != nil {
		t.Errorf("expected no result, got %+v", result)
	}
	if _, ok := stepErrs[StepBasicInfo]["email"]; !ok {
		t.Errorf("expected step 1 email error, got %v", stepErrs)
	}
}

func TestSubmitRequiresPhotos(t *testing.T) {
	svc := newTestService(&fakeRegistrar{}, nil)
	ctx := context.Background()

	d, _ := svc.StartDraft(ctx)
	id := d.ID
	mustPatch(t, svc, id, 1, step1Payload)
	mustAdvance(t, svc, id)
	mustPatch(t, svc, id, 2, step2Payload)
	mustAdvance(t, svc, id)
	mustPatch(t, svc, id, 3, `{"clinic_type":"clinica"}`)
	if _, err := svc.ToggleSpecialization(ctx, id, 101); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Next(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected step 3 errors: %v", res.Errors)
	}

	// No photos uploaded: the final gate must hold.
	_, stepErrs, err := svc.Submit(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := stepErrs[StepPricing]["photos"]; !ok {
		t.Errorf("expected photos error, got %v", stepErrs)
	}
}
