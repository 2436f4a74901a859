package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vetfinder/vetfinder-backend/internal/appointments"
	"github.com/vetfinder/vetfinder-backend/internal/catalog"
	"github.com/vetfinder/vetfinder-backend/internal/company"
	"github.com/vetfinder/vetfinder-backend/internal/http/handlers"
	httpmiddleware "github.com/vetfinder/vetfinder-backend/internal/http/middleware"
	"github.com/vetfinder/vetfinder-backend/internal/reviews"
	"github.com/vetfinder/vetfinder-backend/internal/wizard"
	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	CatalogHandler      *catalog.Handler
	CompanyHandler      *company.Handler
	WizardHandler       *wizard.Handler
	AppointmentsHandler *appointments.Handler
	ReviewsHandler      *reviews.Handler
	AdminAuthSecret     string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Requests/sec and burst for draft creation and photo uploads.
	// Zero disables rate limiting (useful in tests).
	WizardRateLimit float64
	WizardRateBurst int

	// Admin dashboard dependencies (optional)
	DB *sql.DB
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public catalog endpoints
	if cfg.CatalogHandler != nil {
		r.Route("/service-categories", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListCategories)
			r.Get("/{categoryID}", cfg.CatalogHandler.GetCategory)
		})
		r.Get("/service-templates", cfg.CatalogHandler.ListTemplates)
	}

	// Company directory and sub-resources
	if cfg.CompanyHandler != nil {
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", cfg.CompanyHandler.Create)
			r.Get("/", cfg.CompanyHandler.List)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", cfg.CompanyHandler.Get)
				r.Patch("/", cfg.CompanyHandler.Update)

				r.Post("/services", cfg.CompanyHandler.BulkCreateServices)
				r.Get("/services", cfg.CompanyHandler.ListServices)
				r.Delete("/services/{serviceID}", cfg.CompanyHandler.DeleteService)

				r.Post("/photos", cfg.CompanyHandler.UploadPhoto)
				r.Get("/photos", cfg.CompanyHandler.ListPhotos)
				r.Post("/logo", cfg.CompanyHandler.UploadLogo)

				if cfg.AppointmentsHandler != nil {
					r.Post("/appointments", cfg.AppointmentsHandler.Create)
					r.Get("/appointments", cfg.AppointmentsHandler.ListByCompany)
				}
				if cfg.ReviewsHandler != nil {
					r.Post("/reviews", cfg.ReviewsHandler.Create)
					r.Get("/reviews", cfg.ReviewsHandler.ListByCompany)
				}
			})
		})
		r.Get("/photos/*", cfg.CompanyHandler.ServePhoto)
	}

	if cfg.AppointmentsHandler != nil {
		r.Route("/appointments/{appointmentID}", func(r chi.Router) {
			r.Get("/", cfg.AppointmentsHandler.Get)
			r.Patch("/status", cfg.AppointmentsHandler.UpdateStatus)
		})
	}

	// Registration wizard
	if cfg.WizardHandler != nil {
		r.Route("/wizard", func(r chi.Router) {
			if cfg.WizardRateLimit > 0 {
				r.Use(httpmiddleware.RateLimit(cfg.WizardRateLimit, cfg.WizardRateBurst))
			}
			cfg.WizardHandler.Routes(r)
		})
	}

	// Admin routes (protected by JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.CompanyHandler != nil {
				admin.Delete("/companies/{companyID}", cfg.CompanyHandler.Delete)
			}
			if cfg.ReviewsHandler != nil {
				admin.Delete("/reviews/{reviewID}", cfg.ReviewsHandler.Delete)
			}
			if cfg.DB != nil {
				handlers.RegisterAdminRoutes(admin, cfg.DB, cfg.Logger)
			}
		})
	}

	return r
}
