package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opal-salon/salon-scheduler/internal/audit"
	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/httpresp"
	"github.com/opal-salon/salon-scheduler/internal/middleware"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

// ======================================================
// HANDLER
// ======================================================

// ScheduleHandler administers the two layers stacked on top of the
// default weekly schedule: effective-dated exceptions and per-date
// overrides.
type ScheduleHandler struct {
	db       *gorm.DB
	resolver *schedule.Resolver
	audit    *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, resolver *schedule.Resolver, auditor *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, resolver: resolver, audit: auditor}
}

// ======================================================
// RESOLVED SCHEDULE
// ======================================================

// Resolved returns the working intervals that actually apply to one
// employee on one date, after override and exception precedence.
func (h *ScheduleHandler) Resolved(c *gin.Context) {
	employeeID := c.Param("id")
	date := c.Query("date")
	if !validDate(date) {
		httperr.BadRequest(c, "invalid_date", "A date query parameter is required.")
		return
	}

	ranges := h.resolver.WorkingRanges(employeeID, date)

	out := make([][2]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, [2]string{r.Start.Clock(), r.End.Clock()})
	}

	httpresp.OK(c, gin.H{
		"employee_id": employeeID,
		"date":        date,
		"working":     len(out) > 0,
		"ranges":      out,
	})
}

// ======================================================
// EXCEPTIONS (effective-dated regime changes)
// ======================================================

type CreateExceptionRequest struct {
	Effective string            `json:"effective" binding:"required"`
	Ranges    models.WeekRanges `json:"ranges" binding:"required"`
}

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	var entries []models.ScheduleException
	if err := h.db.
		Where("employee_id = ?", c.Param("id")).
		Order("effective ASC, id ASC").
		Find(&entries).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Failed to list schedule exceptions.")
		return
	}
	httpresp.List(c, entries)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	employeeID := c.Param("id")

	var count int64
	h.db.Model(&models.Employee{}).Where("id = ?", employeeID).Count(&count)
	if count == 0 {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if !validDate(req.Effective) {
		httperr.BadRequest(c, "invalid_date", "Invalid effective date.")
		return
	}

	entry := models.ScheduleException{
		EmployeeID: employeeID,
		Effective:  req.Effective,
		Ranges:     req.Ranges,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "Failed to create schedule exception.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "schedule_exception_created",
		Entity:   "schedule_exception",
		EntityID: employeeID,
		Metadata: map[string]string{"effective": req.Effective},
	})

	httpresp.Created(c, entry)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	res := h.db.
		Where("employee_id = ? AND id = ?", c.Param("id"), c.Param("exception_id")).
		Delete(&models.ScheduleException{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Failed to delete schedule exception.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "Schedule exception not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "schedule_exception_deleted",
		Entity:   "schedule_exception",
		EntityID: c.Param("id"),
	})

	c.Status(204)
}

// ======================================================
// OVERRIDES (single dates)
// ======================================================

type PutOverrideRequest struct {
	Date   string            `json:"date" binding:"required"`
	Off    bool              `json:"off"`
	Ranges models.WeekRanges `json:"ranges"`
}

func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	q := h.db.Where("employee_id = ?", c.Param("id"))
	if from := c.Query("from"); validDate(from) {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); validDate(to) {
		q = q.Where("date <= ?", to)
	}

	var overrides []models.ScheduleOverride
	if err := q.Order("date ASC").Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Failed to list schedule overrides.")
		return
	}
	httpresp.List(c, overrides)
}

// PutOverride pins a single date: a day off when off=true, otherwise a
// one-off schedule. An existing row for the same date is replaced.
func (h *ScheduleHandler) PutOverride(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	employeeID := c.Param("id")

	var count int64
	h.db.Model(&models.Employee{}).Where("id = ?", employeeID).Count(&count)
	if count == 0 {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var req PutOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Invalid override date.")
		return
	}

	override := models.ScheduleOverride{
		Date:       req.Date,
		EmployeeID: employeeID,
		Off:        req.Off,
		Ranges:     req.Ranges,
	}

	err := h.db.
		Where("date = ? AND employee_id = ?", req.Date, employeeID).
		Assign(map[string]any{
			"off":    req.Off,
			"ranges": override.Ranges,
		}).
		FirstOrCreate(&override).Error
	if err != nil {
		httperr.Internal(c, "failed_to_save_override", "Failed to save schedule override.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "schedule_override_saved",
		Entity:   "schedule_override",
		EntityID: employeeID,
		Metadata: map[string]any{"date": req.Date, "off": req.Off},
	})

	httpresp.OK(c, override)
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	date := c.Param("date")
	if !validDate(date) {
		httperr.BadRequest(c, "invalid_date", "Invalid override date.")
		return
	}

	res := h.db.
		Where("employee_id = ? AND date = ?", c.Param("id"), date).
		Delete(&models.ScheduleOverride{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_override", "Failed to delete schedule override.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "override_not_found", "Schedule override not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "schedule_override_deleted",
		Entity:   "schedule_override",
		EntityID: c.Param("id"),
		Metadata: map[string]string{"date": date},
	})

	c.Status(204)
}
