package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vetfinder/vetfinder-backend/internal/appointments"
	"github.com/vetfinder/vetfinder-backend/internal/catalog"
	"github.com/vetfinder/vetfinder-backend/internal/company"
	"github.com/vetfinder/vetfinder-backend/internal/photos"
	"github.com/vetfinder/vetfinder-backend/internal/reviews"
	"github.com/vetfinder/vetfinder-backend/internal/wizard"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

const testAdminSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()

	catalogRepo := catalog.NewInMemoryRepository(catalog.SeedCategories(), catalog.SeedTemplates())
	catalogHandler := catalog.NewHandler(catalogRepo, logger)

	companyRepo := company.NewInMemoryRepository()
	manager := company.NewManager(companyRepo, nil, logger)
	store := photos.NewMemoryStore()
	companyHandler := company.NewHandler(manager, companyRepo, store, 5<<20, logger)

	wizardService := wizard.NewService(wizard.NewMemoryStore(0), catalogRepo, manager, nil, nil, logger)
	wizardHandler := wizard.NewHandler(wizardService, store, 5<<20, logger)

	cfg := &Config{
		Logger:              logger,
		CatalogHandler:      catalogHandler,
		CompanyHandler:      companyHandler,
		WizardHandler:       wizardHandler,
		AppointmentsHandler: appointments.NewHandler(appointments.NewInMemoryRepository(), logger),
		ReviewsHandler:      reviews.NewHandler(reviews.NewInMemoryRepository(), logger),
		AdminAuthSecret:     testAdminSecret,
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterCatalogEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/service-categories", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Categories []catalog.ServiceCategory `json:"categories"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Categories) == 0 {
		t.Error("expected seeded categories")
	}
}

func TestRouterWizardDraftLifecycle(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/wizard/drafts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var draft wizard.Draft
	if err := json.NewDecoder(rr.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode draft: %v", err)
	}
	if draft.ID == "" || draft.CurrentStep != wizard.StepBasicInfo {
		t.Errorf("unexpected draft: %+v", draft)
	}

	req = httptest.NewRequest(http.MethodGet, "/wizard/drafts/"+draft.ID, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 fetching draft, got %d", rr.Code)
	}
}

func TestRouterCompanyCreateAndReview(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(company.CreateCompanyRequest{
		Name:       "Clinica Veterinara Anima",
		Email:      "contact@anima.ro",
		Phone:      "+40721234567",
		ClinicType: "clinica",
		Street:     "Strada Motilor 12",
		Locality:   "Cluj-Napoca",
		CountyCode: "CJ",
		PostalCode: "400001",
	})
	req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created company.Company
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode company: %v", err)
	}

	reviewBody, _ := json.Marshal(reviews.CreateReviewRequest{
		AuthorName: "Ana", Rating: 5, Comment: "Servicii excelente",
	})
	req = httptest.NewRequest(http.MethodPost, "/companies/"+created.ID+"/reviews", bytes.NewReader(reviewBody))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Errorf("expected 201 creating review, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/reviews/r-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
}

func TestRouterAdminAcceptsValidToken(t *testing.T) {
	router := newTestRouter(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "staff@vetfinder.ro",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testAdminSecret))
	if err != nil {
		t.Fatal(err)
	}

	// Review does not exist, but passing auth should yield a 404, not 401.
	req := httptest.NewRequest(http.MethodDelete, "/admin/reviews/r-missing", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with valid token, got %d", rr.Code)
	}
}
