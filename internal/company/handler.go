package company

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/internal/photos"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Handler handles HTTP requests for companies, their services and photos.
type Handler struct {
	manager   *Manager
	repo      Repository
	store     photos.Store
	maxUpload int64
	logger    *logging.Logger
}

// NewHandler creates a new company handler.
func NewHandler(manager *Manager, repo Repository, store photos.Store, maxUpload int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &Handler{
		manager:   manager,
		repo:      repo,
		store:     store,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Create handles POST /companies
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.manager.CreateCompany(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// List handles GET /companies
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		CountyCode: q.Get("county"),
		ClinicType: q.Get("clinic_type"),
		Status:     q.Get("status"),
		Query:      q.Get("q"),
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	companies, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list companies", "error", err)
		http.Error(w, "failed to list companies", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"companies": companies,
		"count":     len(companies),
	})
}

// Get handles GET /companies/{companyID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Update handles PATCH /companies/{companyID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	var req UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.WebsiteURL != nil {
		c.WebsiteURL = *req.WebsiteURL
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.OpeningHours != nil {
		if errs := req.OpeningHours.Validate(); len(errs) > 0 {
			h.writeError(w, &ValidationError{Fields: errs})
			return
		}
		c.OpeningHours = *req.OpeningHours
	}

	if err := h.repo.Update(r.Context(), c); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Delete handles DELETE /companies/{companyID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCreateServices handles POST /companies/{companyID}/services/bulk
func (h *Handler) BulkCreateServices(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	var req struct {
		Services []ServicePricingInput `json:"services"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	services, err := h.manager.BulkCreateServices(r.Context(), id, req.Services)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"services": services,
		"count":    len(services),
	})
}

// ListServices handles GET /companies/{companyID}/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	services, err := h.repo.ListServices(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"services": services,
		"count":    len(services),
	})
}

// DeleteService handles DELETE /companies/{companyID}/services/{serviceID}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	serviceID := chi.URLParam(r, "serviceID")

	if err := h.repo.DeleteService(r.Context(), companyID, serviceID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto handles POST /companies/{companyID}/photos. Multipart form with
// a single "photo" part.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	file, contentType, err := h.readUpload(r, "photo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.store.Put(r.Context(), "companies/"+id, contentType, file)
	if err != nil {
		if err == photos.ErrUnsupportedType {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		h.logger.Error("failed to store photo", "error", err, "company_id", id)
		http.Error(w, "failed to store photo", http.StatusInternalServerError)
		return
	}

	p, err := h.manager.AddPhoto(r.Context(), id, key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListPhotos handles GET /companies/{companyID}/photos
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	list, err := h.repo.ListPhotos(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"photos": list,
		"count":  len(list),
	})
}

// UploadLogo handles POST /companies/{companyID}/logo. Multipart form with a
// single "logo" part.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")

	file, contentType, err := h.readUpload(r, "logo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.store.Put(r.Context(), "companies/"+id+"/logo", contentType, file)
	if err != nil {
		if err == photos.ErrUnsupportedType {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		h.logger.Error("failed to store logo", "error", err, "company_id", id)
		http.Error(w, "failed to store logo", http.StatusInternalServerError)
		return
	}

	if err := h.manager.AttachLogo(r.Context(), id, key); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"logo_key": key})
}

// ServePhoto handles GET /photos/* and streams the blob from the photo store.
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		http.Error(w, "missing photo key", http.StatusBadRequest)
		return
	}

	body, contentType, err := h.store.Get(r.Context(), key)
	if err != nil {
		if err == photos.ErrNotFound {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch photo", "error", err, "key", key)
		http.Error(w, "failed to fetch photo", http.StatusInternalServerError)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, body)
}

func (h *Handler) readUpload(r *http.Request, field string) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, "", errors.New("invalid multipart form or file too large")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", errors.New("missing " + field + " file")
	}
	return file, header.Header.Get("Content-Type"), nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrCompanyNotFound), errors.Is(err, ErrServiceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoServices), errors.Is(err, ErrTooManyPhotos):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("company request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
