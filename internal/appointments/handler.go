package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	repo   Repository
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler creates a new appointments handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger, now: time.Now}
}

// Create handles POST /companies/{companyID}/appointments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.Validate(h.now()); len(errs) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"fields": errs,
		})
		return
	}

	a := &Appointment{
		CompanyID:       companyID,
		ServiceID:       req.ServiceID,
		OwnerName:       req.OwnerName,
		OwnerEmail:      req.OwnerEmail,
		OwnerPhone:      req.OwnerPhone,
		PetName:         req.PetName,
		PetSpecies:      req.PetSpecies,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusPending,
		Notes:           req.Notes,
	}
	if err := h.repo.Create(r.Context(), a); err != nil {
		h.logger.Error("failed to create appointment", "error", err, "company_id", companyID)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// ListByCompany handles GET /companies/{companyID}/appointments?status=
func (h *Handler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	status := r.URL.Query().Get("status")

	list, err := h.repo.ListByCompany(r.Context(), companyID, status)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err, "company_id", companyID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"appointments": list,
		"count":        len(list),
	})
}

// Get handles GET /appointments/{appointmentID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// UpdateStatus handles PATCH /appointments/{appointmentID}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if !CanTransition(a.Status, req.Status) {
		http.Error(w, ErrInvalidTransition.Error(), http.StatusConflict)
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeError(w, err)
		return
	}
	a.Status = req.Status

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAppointmentNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.logger.Error("appointment request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
