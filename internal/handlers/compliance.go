package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/andreprog02/saas-sst/internal/compliance"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
	"github.com/andreprog02/saas-sst/internal/services"
)

// ComplianceHandler serves the read side: dashboard, exports and the policies
// the states are computed with
type ComplianceHandler struct {
	logger     *logger.Logger
	dashboards services.DashboardService
	exports    services.ExportService
	policies   *compliance.PolicySet
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(
	logger *logger.Logger,
	dashboards services.DashboardService,
	exports services.ExportService,
	policies *compliance.PolicySet,
) *ComplianceHandler {
	return &ComplianceHandler{logger: logger, dashboards: dashboards, exports: exports, policies: policies}
}

// PoliciesResponse lists the obligation policies in force
type PoliciesResponse struct {
	Policies             []compliance.Policy `json:"policies"`
	InspectionMaxGapDays int                 `json:"inspection_max_gap_days"`
}

// RegisterRoutes registers the compliance routes on a tenant-scoped router
func (h *ComplianceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/extinguishers/export.csv", h.ExportExtinguishers).Methods("GET")
	router.HandleFunc("/policies", h.GetPolicies).Methods("GET")
}

// GetPolicies returns the recurrence intervals and warning windows per obligation kind
func (h *ComplianceHandler) GetPolicies(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, PoliciesResponse{
		Policies:             h.policies.All(),
		InspectionMaxGapDays: h.policies.InspectionMaxGapDays,
	})
}

// GetDashboard returns the tenant's compliance dashboard
func (h *ComplianceHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantIDFromContext(r.Context())

	dashboard, err := h.dashboards.GetDashboard(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to build dashboard", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, dashboard)
}

// ExportExtinguishers streams the extinguisher register as CSV
func (h *ComplianceHandler) ExportExtinguishers(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := middleware.TenantIDFromContext(r.Context())

	// buffered so a failure can still produce an error status
	var buf bytes.Buffer
	if err := h.exports.WriteExtinguishersCSV(r.Context(), tenantID, &buf); err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to export extinguishers", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="extinguishers.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
