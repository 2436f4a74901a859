package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

// AdminDashboardHandler serves the platform-wide moderation dashboard.
type AdminDashboardHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminDashboardHandler creates a new admin dashboard handler.
func NewAdminDashboardHandler(db *sql.DB, logger *logging.Logger) *AdminDashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminDashboardHandler{
		db:     db,
		logger: logger,
	}
}

// DashboardOverviewResponse contains the main dashboard metrics.
type DashboardOverviewResponse struct {
	Period         string             `json:"period"`
	Companies      CompanyMetrics     `json:"companies"`
	Appointments   AppointmentMetrics `json:"appointments"`
	Reviews        ReviewMetrics      `json:"reviews"`
	PendingActions []PendingAction    `json:"pending_actions"`
}

// CompanyMetrics contains registration-related dashboard metrics.
type CompanyMetrics struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Incomplete  int `json:"incomplete"`
	NewThisWeek int `json:"new_this_week"`
	ByCounty    []struct {
		CountyCode string `json:"county_code"`
		Count      int    `json:"count"`
	} `json:"by_county,omitempty"`
}

// AppointmentMetrics contains appointment-related dashboard metrics.
type AppointmentMetrics struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Upcoming  int `json:"upcoming"`
	ThisWeek  int `json:"this_week"`
	Cancelled int `json:"cancelled"`
}

// ReviewMetrics contains review-related dashboard metrics.
type ReviewMetrics struct {
	Total         int     `json:"total"`
	ThisWeek      int     `json:"this_week"`
	AverageRating float64 `json:"average_rating"`
}

// PendingAction represents an item requiring staff attention.
type PendingAction struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Link        string `json:"link,omitempty"`
}

// GetDashboardOverview returns the main dashboard overview.
// GET /admin/dashboard
func (h *AdminDashboardHandler) GetDashboardOverview(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	dashboard := DashboardOverviewResponse{
		Period: period,
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	// Company metrics
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies`,
	).Scan(&dashboard.Companies.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies WHERE status = 'active'`,
	).Scan(&dashboard.Companies.Active)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies WHERE status = 'incomplete'`,
	).Scan(&dashboard.Companies.Incomplete)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Companies.NewThisWeek)

	// Appointment metrics
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments`,
	).Scan(&dashboard.Appointments.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments WHERE status = 'pending'`,
	).Scan(&dashboard.Appointments.Pending)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments WHERE starts_at > $1 AND status = 'confirmed'`, now,
	).Scan(&dashboard.Appointments.Upcoming)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Appointments.ThisWeek)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments WHERE status = 'cancelled'`,
	).Scan(&dashboard.Appointments.Cancelled)

	// Review metrics
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM reviews`,
	).Scan(&dashboard.Reviews.Total)

	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM reviews WHERE created_at >= $1`, weekAgo,
	).Scan(&dashboard.Reviews.ThisWeek)

	h.db.QueryRowContext(r.Context(),
		`SELECT COALESCE(AVG(rating), 0) FROM reviews`,
	).Scan(&dashboard.Reviews.AverageRating)

	dashboard.PendingActions = h.getPendingActions(r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}

func (h *AdminDashboardHandler) getPendingActions(r *http.Request) []PendingAction {
	var actions []PendingAction

	// Registrations that submitted but never finished the pipeline.
	var staleIncomplete int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies WHERE status = 'incomplete' AND updated_at < NOW() - INTERVAL '3 days'`,
	).Scan(&staleIncomplete)
	if staleIncomplete > 0 {
		actions = append(actions, PendingAction{
			Type:        "stale_registration",
			Priority:    "high",
			Description: "Incomplete registrations older than 3 days",
			Count:       staleIncomplete,
			Link:        "/admin/companies?status=incomplete",
		})
	}

	// Appointments awaiting confirmation past their start time.
	var overduePending int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM appointments WHERE status = 'pending' AND starts_at < NOW()`,
	).Scan(&overduePending)
	if overduePending > 0 {
		actions = append(actions, PendingAction{
			Type:        "overdue_appointment",
			Priority:    "medium",
			Description: "Pending appointments past their start time",
			Count:       overduePending,
			Link:        "/admin/appointments?status=pending",
		})
	}

	// Active clinics with no logo hurt listing quality.
	var missingLogos int
	h.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM companies WHERE status = 'active' AND (logo_key IS NULL OR logo_key = '')`,
	).Scan(&missingLogos)
	if missingLogos > 0 {
		actions = append(actions, PendingAction{
			Type:        "missing_logo",
			Priority:    "low",
			Description: "Active clinics without a logo",
			Count:       missingLogos,
			Link:        "/admin/companies?missing=logo",
		})
	}

	return actions
}

// CompanyListItem represents a company in the admin list response.
type CompanyListItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	CountyCode string  `json:"county_code"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// ListCompaniesResponse contains the admin list of registered companies.
type ListCompaniesResponse struct {
	Companies []CompanyListItem `json:"companies"`
	Total     int               `json:"total"`
}

// ListCompanies returns all registered companies regardless of status.
// GET /admin/companies
func (h *AdminDashboardHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := `
		SELECT id, name, email, county_code, status, created_at
		FROM companies
		ORDER BY created_at DESC
	`
	var args []any
	if status := r.URL.Query().Get("status"); status != "" {
		query = `
		SELECT id, name, email, county_code, status, created_at
		FROM companies
		WHERE status = $1
		ORDER BY created_at DESC
	`
		args = append(args, status)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		h.logger.Error("failed to query companies", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var companies []CompanyListItem
	for rows.Next() {
		var c CompanyListItem
		var email sql.NullString
		var createdAt time.Time

		if err := rows.Scan(&c.ID, &c.Name, &email, &c.CountyCode, &c.Status, &createdAt); err != nil {
			h.logger.Error("failed to scan company row", "error", err)
			continue
		}

		if email.Valid {
			c.Email = &email.String
		}
		c.CreatedAt = createdAt.Format(time.RFC3339)
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		h.logger.Error("error iterating company rows", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := ListCompaniesResponse{
		Companies: companies,
		Total:     len(companies),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode companies response", "error", err)
	}
}

// UpdateCompanyStatusRequest is the body for a moderation status change.
type UpdateCompanyStatusRequest struct {
	Status string `json:"status"`
}

var moderationStatuses = map[string]bool{
	"active":     true,
	"incomplete": true,
	"suspended":  true,
}

// UpdateCompanyStatus lets staff suspend or reinstate a listing.
// PATCH /admin/companies/{companyID}/status
func (h *AdminDashboardHandler) UpdateCompanyStatus(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req UpdateCompanyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !moderationStatuses[req.Status] {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	res, err := h.db.ExecContext(r.Context(),
		`UPDATE companies SET status = $1, updated_at = NOW() WHERE id = $2`,
		req.Status, companyID,
	)
	if err != nil {
		h.logger.Error("failed to update company status", "error", err, "company_id", companyID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}

	h.logger.Info("company status changed", "company_id", companyID, "status", req.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":     companyID,
		"status": req.Status,
	})
}

// RegisterAdminRoutes registers all admin dashboard routes.
func RegisterAdminRoutes(r chi.Router, db *sql.DB, logger *logging.Logger) {
	dashboardHandler := NewAdminDashboardHandler(db, logger)

	r.Get("/dashboard", dashboardHandler.GetDashboardOverview)
	r.Get("/companies", dashboardHandler.ListCompanies)
	r.Patch("/companies/{companyID}/status", dashboardHandler.UpdateCompanyStatus)
}
