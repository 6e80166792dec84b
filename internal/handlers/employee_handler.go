package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/httpresp"
	"github.com/opal-salon/salon-scheduler/internal/middleware"
	"github.com/opal-salon/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type EmployeeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, auditor *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: auditor}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEmployeeRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`

	Schedule models.WeekRanges `json:"schedule"`

	Color        string `json:"color"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateEmployeeRequest struct {
	Name *string `json:"name"`

	Schedule *models.WeekRanges `json:"schedule"`

	Color        *string `json:"color"`
	DisplayOrder *int    `json:"display_order"`
	Active       *bool   `json:"active"`
}

// ======================================================
// LIST
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Employee{})
	if c.Query("include_inactive") != "true" {
		q = q.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := q.
		Order("display_order ASC, name ASC").
		Find(&employees).Error; err != nil {

		httperr.Internal(c, "failed_to_list_employees", "Failed to list employees.")
		return
	}

	httpresp.List(c, employees)
}

// ======================================================
// GET
// ======================================================

func (h *EmployeeHandler) Get(c *gin.Context) {
	var emp models.Employee
	if err := h.db.First(&emp, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}
	httpresp.OK(c, emp)
}

// ======================================================
// CREATE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	id := strings.ToLower(strings.TrimSpace(req.ID))
	if id == "" {
		httperr.BadRequest(c, "invalid_id", "Employee id is required.")
		return
	}

	var count int64
	h.db.Model(&models.Employee{}).Where("id = ?", id).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "employee_already_exists", "Employee id already in use.")
		return
	}

	emp := models.Employee{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Schedule:     req.Schedule,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}

	if err := h.db.Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Failed to create employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_created",
		Entity:   "employee",
		EntityID: emp.ID,
	})

	httpresp.Created(c, emp)
}

// ======================================================
// UPDATE
// ======================================================

func (h *EmployeeHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var emp models.Employee
	if err := h.db.First(&emp, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Schedule != nil {
		emp.Schedule = *req.Schedule
	}
	if req.Color != nil {
		emp.Color = *req.Color
	}
	if req.DisplayOrder != nil {
		emp.DisplayOrder = *req.DisplayOrder
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to update employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_updated",
		Entity:   "employee",
		EntityID: emp.ID,
	})

	httpresp.OK(c, emp)
}

// ======================================================
// DEACTIVATE
// ======================================================

// Deactivate hides an employee from the calendar instead of deleting
// the row, so historical appointments keep their column reference.
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var emp models.Employee
	if err := h.db.First(&emp, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	emp.Active = false
	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Failed to deactivate employee.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "employee_deactivated",
		Entity:   "employee",
		EntityID: emp.ID,
	})

	c.Status(204)
}
