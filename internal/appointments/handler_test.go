package appointments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

func newTestRouter() (*chi.Mux, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.Default())

	r := chi.NewRouter()
	r.Post("/companies/{companyID}/appointments", h.Create)
	r.Get("/companies/{companyID}/appointments", h.ListByCompany)
	r.Get("/appointments/{appointmentID}", h.Get)
	r.Patch("/appointments/{appointmentID}/status", h.UpdateStatus)
	return r, repo
}

func validBooking() CreateAppointmentRequest {
	return CreateAppointmentRequest{
		OwnerName:       "Ana Popescu",
		OwnerEmail:      "ana@example.ro",
		OwnerPhone:      "0721234567",
		PetName:         "Rex",
		PetSpecies:      "caine",
		StartsAt:        time.Now().Add(48 * time.Hour).UTC(),
		DurationMinutes: 30,
	}
}

func bookAppointment(t *testing.T, router http.Handler) Appointment {
	t.Helper()
	body, _ := json.Marshal(validBooking())
	req := httptest.NewRequest(http.MethodPost, "/companies/c-1/appointments", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var a Appointment
	if err := json.NewDecoder(w.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCreateAppointment(t *testing.T) {
	router, _ := newTestRouter()

	a := bookAppointment(t, router)
	if a.Status != StatusPending {
		t.Errorf("expected pending status, got %s", a.Status)
	}
	if a.CompanyID != "c-1" {
		t.Errorf("expected company id from path, got %s", a.CompanyID)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	router, _ := newTestRouter()

	bad := validBooking()
	bad.OwnerPhone = "12345"
	bad.StartsAt = time.Now().Add(-time.Hour)
	body, _ := json.Marshal(bad)

	req := httptest.NewRequest(http.MethodPost, "/companies/c-1/appointments", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	for _, field := range []string{"owner_phone", "starts_at"} {
		if !strings.Contains(w.Body.String(), field) {
			t.Errorf("expected %s error in %s", field, w.Body.String())
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	router, _ := newTestRouter()
	a := bookAppointment(t, router)

	patch := func(status string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+a.ID+"/status",
			strings.NewReader(`{"status":"`+status+`"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// pending -> completed skips confirmation and must be rejected.
	if w := patch(StatusCompleted); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for pending->completed, got %d", w.Code)
	}

	if w := patch(StatusConfirmed); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for pending->confirmed, got %d: %s", w.Code, w.Body.String())
	}
	if w := patch(StatusCompleted); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for confirmed->completed, got %d", w.Code)
	}

	// Completed is terminal.
	if w := patch(StatusCancelled); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for completed->cancelled, got %d", w.Code)
	}
}

func TestListByCompanyFiltersStatus(t *testing.T) {
	router, repo := newTestRouter()
	a := bookAppointment(t, router)
	bookAppointment(t, router)

	if err := repo.UpdateStatus(context.Background(), a.ID, StatusConfirmed); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/companies/c-1/appointments?status=confirmed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 {
		t.Errorf("expected 1 confirmed appointment, got %d", resp.Count)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/appointments/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
