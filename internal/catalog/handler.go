package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Handler handles HTTP requests for the service catalog
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListCategories handles GET /service-categories?with=specializations
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	withSpecs := r.URL.Query().Get("with") == "specializations"

	categories, err := h.repo.ListCategories(r.Context(), withSpecs)
	if err != nil {
		h.logger.Error("failed to list service categories", "error", err)
		http.Error(w, "failed to list service categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /service-categories/{categoryID}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := h.repo.GetCategory(r.Context(), id)
	if err == ErrCategoryNotFound {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get service category", "error", err, "category_id", id)
		http.Error(w, "failed to get service category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

// ListTemplates handles GET /service-templates
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repo.ListTemplates(r.Context())
	if err != nil {
		h.logger.Error("failed to list service templates", "error", err)
		http.Error(w, "failed to list service templates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}
