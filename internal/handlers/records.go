package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/middleware"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/services"
)

// RecordsHandler serves the write side: events and records that feed the
// compliance computations
type RecordsHandler struct {
	logger       *logger.Logger
	inspections  services.InspectionService
	disciplinary services.DisciplinaryService
	vaccinations services.VaccinationService
	absences     services.AbsenceService
	ppe          services.PPEService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(
	logger *logger.Logger,
	inspections services.InspectionService,
	disciplinary services.DisciplinaryService,
	vaccinations services.VaccinationService,
	absences services.AbsenceService,
	ppe services.PPEService,
) *RecordsHandler {
	return &RecordsHandler{
		logger:       logger,
		inspections:  inspections,
		disciplinary: disciplinary,
		vaccinations: vaccinations,
		absences:     absences,
		ppe:          ppe,
	}
}

// RegisterRoutes registers the record routes on a tenant-scoped router
func (h *RecordsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/inspections", h.CreateInspection).Methods("POST")
	router.HandleFunc("/inspections", h.ListInspections).Methods("GET")

	router.HandleFunc("/disciplinary-records", h.CreateDisciplinaryRecord).Methods("POST")
	router.HandleFunc("/disciplinary-records/{id}", h.UpdateDisciplinaryRecord).Methods("PUT")
	router.HandleFunc("/disciplinary-records/{id}", h.DeleteDisciplinaryRecord).Methods("DELETE")

	router.HandleFunc("/vaccinations", h.CreateVaccination).Methods("POST")
	router.HandleFunc("/vaccinations/{id}/boosters", h.RecordBooster).Methods("POST")

	router.HandleFunc("/absences", h.CreateAbsence).Methods("POST")
	router.HandleFunc("/employees/{id}/absences", h.ListEmployeeAbsences).Methods("GET")

	router.HandleFunc("/ppe-deliveries", h.CreatePPEDelivery).Methods("POST")
}

func tenantOf(r *http.Request) string {
	tenantID, _ := middleware.TenantIDFromContext(r.Context())
	return tenantID
}

// Inspections

func (h *RecordsHandler) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var inspection models.InspectionRecord
	if err := decodeJSON(r, &inspection); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	inspection.ID = ""

	tenantID := tenantOf(r)
	created, err := h.inspections.RecordInspection(r.Context(), tenantID, &inspection)
	if err != nil {
		writeServiceError(w, h.logger.WithAsset(tenantID, inspection.AssetType, inspection.AssetID), "Failed to record inspection", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RecordsHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	assetType := r.URL.Query().Get("asset_type")
	assetID := r.URL.Query().Get("asset_id")
	if assetType == "" || assetID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "asset_type and asset_id are required", nil)
		return
	}

	tenantID := tenantOf(r)
	inspections, err := h.inspections.ListInspections(r.Context(), tenantID, assetType, assetID)
	if err != nil {
		writeServiceError(w, h.logger.WithAsset(tenantID, assetType, assetID), "Failed to list inspections", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, inspections)
}

// Disciplinary records

func (h *RecordsHandler) CreateDisciplinaryRecord(w http.ResponseWriter, r *http.Request) {
	var record models.DisciplinaryRecord
	if err := decodeJSON(r, &record); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	record.ID = ""

	tenantID := tenantOf(r)
	created, err := h.disciplinary.CreateRecord(r.Context(), tenantID, &record)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, record.EmployeeID), "Failed to create disciplinary record", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RecordsHandler) UpdateDisciplinaryRecord(w http.ResponseWriter, r *http.Request) {
	var record models.DisciplinaryRecord
	if err := decodeJSON(r, &record); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	record.ID = mux.Vars(r)["id"]

	tenantID := tenantOf(r)
	updated, err := h.disciplinary.UpdateRecord(r.Context(), tenantID, &record)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to update disciplinary record", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, updated)
}

func (h *RecordsHandler) DeleteDisciplinaryRecord(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantOf(r)
	if err := h.disciplinary.DeleteRecord(r.Context(), tenantID, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to delete disciplinary record", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Vaccinations

func (h *RecordsHandler) CreateVaccination(w http.ResponseWriter, r *http.Request) {
	var vaccination models.Vaccination
	if err := decodeJSON(r, &vaccination); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	vaccination.ID = ""

	tenantID := tenantOf(r)
	created, err := h.vaccinations.Register(r.Context(), tenantID, &vaccination)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, vaccination.EmployeeID), "Failed to register vaccination", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

// BoosterRequest is the body of a booster registration
type BoosterRequest struct {
	AppliedOn time.Time `json:"applied_on"`
	Dose      string    `json:"dose"`
}

func (h *RecordsHandler) RecordBooster(w http.ResponseWriter, r *http.Request) {
	var req BoosterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tenantID := tenantOf(r)
	vaccination, err := h.vaccinations.RecordBooster(r.Context(), tenantID, mux.Vars(r)["id"], req.AppliedOn, req.Dose)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to record booster", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, vaccination)
}

// Absences

func (h *RecordsHandler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var absence models.Absence
	if err := decodeJSON(r, &absence); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	absence.ID = ""

	tenantID := tenantOf(r)
	created, err := h.absences.Register(r.Context(), tenantID, &absence)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, absence.EmployeeID), "Failed to register absence", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RecordsHandler) ListEmployeeAbsences(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantOf(r)
	employeeID := mux.Vars(r)["id"]

	absences, err := h.absences.ListForEmployee(r.Context(), tenantID, employeeID)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, employeeID), "Failed to list absences", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, absences)
}

// PPE

func (h *RecordsHandler) CreatePPEDelivery(w http.ResponseWriter, r *http.Request) {
	var delivery models.PPEDelivery
	if err := decodeJSON(r, &delivery); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	delivery.ID = ""

	tenantID := tenantOf(r)
	created, err := h.ppe.Deliver(r.Context(), tenantID, &delivery)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, delivery.EmployeeID), "Failed to deliver PPE", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}
