package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/services"
)

// RegistryHandler serves the tenant's master records: departments, employees,
// assets and PPE stock that obligations and events refer to
type RegistryHandler struct {
	logger       *logger.Logger
	employees    services.EmployeeService
	assets       services.AssetService
	ppe          services.PPEService
	disciplinary services.DisciplinaryService
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(
	logger *logger.Logger,
	employees services.EmployeeService,
	assets services.AssetService,
	ppe services.PPEService,
	disciplinary services.DisciplinaryService,
) *RegistryHandler {
	return &RegistryHandler{
		logger:       logger,
		employees:    employees,
		assets:       assets,
		ppe:          ppe,
		disciplinary: disciplinary,
	}
}

// RegisterRoutes registers the registry routes on a tenant-scoped router
func (h *RegistryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/departments", h.CreateDepartment).Methods("POST")
	router.HandleFunc("/departments", h.ListDepartments).Methods("GET")

	router.HandleFunc("/employees", h.CreateEmployee).Methods("POST")
	router.HandleFunc("/employees", h.ListEmployees).Methods("GET")
	router.HandleFunc("/employees/{id}", h.UpdateEmployee).Methods("PUT")
	router.HandleFunc("/training-certificates", h.CreateTrainingCertificate).Methods("POST")

	router.HandleFunc("/locations", h.CreateLocation).Methods("POST")
	router.HandleFunc("/extinguishers", h.CreateExtinguisher).Methods("POST")
	router.HandleFunc("/equipment", h.CreateEquipment).Methods("POST")

	router.HandleFunc("/ppe-types", h.CreatePPEType).Methods("POST")
	router.HandleFunc("/ppe-items", h.CreatePPEItem).Methods("POST")
	router.HandleFunc("/ppe-items", h.ListPPEItems).Methods("GET")

	router.HandleFunc("/disciplinary-categories", h.CreateDisciplinaryCategory).Methods("POST")
}

// DepartmentRequest is the body of a department creation
type DepartmentRequest struct {
	models.Department
	NormIDs []string `json:"norm_ids"`
}

// Departments and employees

func (h *RegistryHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req DepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Department.ID = ""

	tenantID := tenantOf(r)
	created, err := h.employees.CreateDepartment(r.Context(), tenantID, &req.Department, req.NormIDs)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create department", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantOf(r)
	departments, err := h.employees.ListDepartments(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to list departments", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, departments)
}

func (h *RegistryHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var employee models.Employee
	if err := decodeJSON(r, &employee); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	employee.ID = ""

	tenantID := tenantOf(r)
	created, err := h.employees.CreateEmployee(r.Context(), tenantID, &employee)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create employee", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantOf(r)
	employees, err := h.employees.ListEmployees(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to list employees", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, employees)
}

func (h *RegistryHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var changes models.Employee
	if err := decodeJSON(r, &changes); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	changes.ID = mux.Vars(r)["id"]

	tenantID := tenantOf(r)
	updated, err := h.employees.UpdateEmployee(r.Context(), tenantID, &changes)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, changes.ID), "Failed to update employee", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, updated)
}

func (h *RegistryHandler) CreateTrainingCertificate(w http.ResponseWriter, r *http.Request) {
	var certificate models.TrainingCertificate
	if err := decodeJSON(r, &certificate); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	certificate.ID = ""

	tenantID := tenantOf(r)
	created, err := h.employees.CreateTrainingCertificate(r.Context(), tenantID, &certificate)
	if err != nil {
		writeServiceError(w, h.logger.WithEmployee(tenantID, certificate.EmployeeID), "Failed to record training certificate", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

// Locations and assets

func (h *RegistryHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if err := decodeJSON(r, &location); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	location.ID = ""

	tenantID := tenantOf(r)
	created, err := h.assets.CreateLocation(r.Context(), tenantID, &location)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create location", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) CreateExtinguisher(w http.ResponseWriter, r *http.Request) {
	var extinguisher models.Extinguisher
	if err := decodeJSON(r, &extinguisher); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	extinguisher.ID = ""

	tenantID := tenantOf(r)
	created, err := h.assets.CreateExtinguisher(r.Context(), tenantID, &extinguisher)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to register extinguisher", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var equipment models.SafetyEquipment
	if err := decodeJSON(r, &equipment); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	equipment.ID = ""

	tenantID := tenantOf(r)
	created, err := h.assets.CreateEquipment(r.Context(), tenantID, &equipment)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to register equipment", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

// PPE stock

func (h *RegistryHandler) CreatePPEType(w http.ResponseWriter, r *http.Request) {
	var ppeType models.PPEType
	if err := decodeJSON(r, &ppeType); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ppeType.ID = ""

	tenantID := tenantOf(r)
	created, err := h.ppe.CreateType(r.Context(), tenantID, &ppeType)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create PPE type", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) CreatePPEItem(w http.ResponseWriter, r *http.Request) {
	var item models.PPEItem
	if err := decodeJSON(r, &item); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item.ID = ""

	tenantID := tenantOf(r)
	created, err := h.ppe.CreateItem(r.Context(), tenantID, &item)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create PPE item", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}

func (h *RegistryHandler) ListPPEItems(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantOf(r)
	items, err := h.ppe.ListItems(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to list PPE items", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, items)
}

// Disciplinary categories

func (h *RegistryHandler) CreateDisciplinaryCategory(w http.ResponseWriter, r *http.Request) {
	var category models.DisciplinaryCategory
	if err := decodeJSON(r, &category); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	category.ID = ""

	tenantID := tenantOf(r)
	created, err := h.disciplinary.CreateCategory(r.Context(), tenantID, &category)
	if err != nil {
		writeServiceError(w, h.logger.WithTenant(tenantID), "Failed to create disciplinary category", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, created)
}
