package wizard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vetfinder/vetfinder-backend/internal/photos"
	"github.com/vetfinder/vetfinder-backend/internal/selection"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Handler exposes the wizard over HTTP.
type Handler struct {
	service   *Service
	store     photos.Store
	maxUpload int64
	logger    *logging.Logger
}

// NewHandler creates a wizard handler.
func NewHandler(service *Service, store photos.Store, maxUpload int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &Handler{service: service, store: store, maxUpload: maxUpload, logger: logger}
}

// Routes mounts the wizard endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/drafts", h.StartDraft)
	r.Route("/drafts/{draftID}", func(r chi.Router) {
		r.Get("/", h.GetDraft)
		r.Delete("/", h.DeleteDraft)
		r.Put("/steps/{step}", h.UpdateStep)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/submit", h.Submit)
		r.Post("/photos", h.UploadPhoto)
		r.Post("/logo", h.UploadLogo)
		r.Post("/selection/specializations/{specID}/toggle", h.ToggleSpecialization)
		r.Post("/selection/categories/{categoryID}/toggle", h.ToggleCategory)
		r.Post("/selection/categories/{categoryID}/expand", h.ToggleExpansion)
	})
}

// StartDraft handles POST /wizard/drafts
func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.StartDraft(r.Context())
	if err != nil {
		h.logger.Error("failed to start draft", "error", err)
		http.Error(w, "failed to start draft", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// GetDraft handles GET /wizard/drafts/{draftID}
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDraft(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// DeleteDraft handles DELETE /wizard/drafts/{draftID}
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDraft(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStep handles PUT /wizard/drafts/{draftID}/steps/{step}
func (h *Handler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		http.Error(w, "invalid step number", http.StatusBadRequest)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.service.UpdateStep(r.Context(), chi.URLParam(r, "draftID"), step, raw)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// Next handles POST /wizard/drafts/{draftID}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Next(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(res.Errors) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(res)
}

// Back handles POST /wizard/drafts/{draftID}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Back(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// Submit handles POST /wizard/drafts/{draftID}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	result, stepErrs, err := h.service.Submit(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(stepErrs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation failed",
			"steps":  stepErrs,
			"status": "rejected",
		})
		return
	}

	if result.Status == SubmitCompleted {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusBadGateway)
	}
	json.NewEncoder(w).Encode(result)
}

// ToggleSpecialization handles POST /wizard/drafts/{draftID}/selection/specializations/{specID}/toggle
func (h *Handler) ToggleSpecialization(w http.ResponseWriter, r *http.Request) {
	specID, err := strconv.ParseInt(chi.URLParam(r, "specID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid specialization id", http.StatusBadRequest)
		return
	}

	d, err := h.service.ToggleSpecialization(r.Context(), chi.URLParam(r, "draftID"), specID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// ToggleCategory handles POST /wizard/drafts/{draftID}/selection/categories/{categoryID}/toggle
func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	d, err := h.service.ToggleCategory(r.Context(), chi.URLParam(r, "draftID"), categoryID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// ToggleExpansion handles POST /wizard/drafts/{draftID}/selection/categories/{categoryID}/expand
func (h *Handler) ToggleExpansion(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	d, err := h.service.ToggleExpansion(r.Context(), chi.URLParam(r, "draftID"), categoryID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// UploadPhoto handles POST /wizard/drafts/{draftID}/photos
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")

	file, contentType, err := h.readUpload(r, "photo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.store.Put(r.Context(), "drafts/"+id, contentType, file)
	if err != nil {
		if err == photos.ErrUnsupportedType {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		h.logger.Error("failed to store draft photo", "error", err, "draft_id", id)
		http.Error(w, "failed to store photo", http.StatusInternalServerError)
		return
	}

	d, err := h.service.AddPhotoKey(r.Context(), id, key)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"key":         key,
		"photo_count": len(d.Step4.PhotoKeys),
	})
}

// UploadLogo handles POST /wizard/drafts/{draftID}/logo
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")

	file, contentType, err := h.readUpload(r, "logo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.store.Put(r.Context(), "drafts/"+id+"/logo", contentType, file)
	if err != nil {
		if err == photos.ErrUnsupportedType {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		h.logger.Error("failed to store draft logo", "error", err, "draft_id", id)
		http.Error(w, "failed to store logo", http.StatusInternalServerError)
		return
	}

	if _, err := h.service.SetLogoKey(r.Context(), id, key); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"logo_key": key})
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
	switch {
	case errors.Is(err, ErrDraftNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrStepNotReached),
		errors.Is(err, ErrNotOnFinalStep),
		errors.Is(err, selection.ErrUnknownSpecialization),
		errors.Is(err, selection.ErrUnknownCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("wizard request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
