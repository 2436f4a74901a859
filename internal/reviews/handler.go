package reviews

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new reviews handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /companies/{companyID}/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"fields": errs,
		})
		return
	}

	rv := &Review{
		CompanyID:  companyID,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.repo.Create(r.Context(), rv); err != nil {
		h.logger.Error("failed to create review", "error", err, "company_id", companyID)
		http.Error(w, "failed to create review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rv)
}

// ListByCompany handles GET /companies/{companyID}/reviews
func (h *Handler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	list, err := h.repo.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err, "company_id", companyID)
		http.Error(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	summary, err := h.repo.Summary(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to summarize reviews", "error", err, "company_id", companyID)
		http.Error(w, "failed to summarize reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"reviews": list,
		"count":   len(list),
		"summary": summary,
	})
}

// Delete handles DELETE /reviews/{reviewID} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete review", "error", err)
		http.Error(w, "failed to delete review", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
