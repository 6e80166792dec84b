package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/httpresp"
	"github.com/opal-salon/salon-scheduler/internal/middleware"
	"github.com/opal-salon/salon-scheduler/internal/schedule"
	uc "github.com/opal-salon/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *uc.CreateAppointment
	update     *uc.UpdateAppointment
	move       *uc.MoveAppointment
	cancel     *uc.CancelAppointment
	complete   *uc.CompleteAppointment
	delete     *uc.DeleteAppointment
	purge      *uc.PurgeOldAppointments
	listByDate *uc.ListAppointmentsByDate
	avail      *uc.GetAvailability
	freeWindow *uc.GetFreeWindow
}

func NewAppointmentHandler(
	create *uc.CreateAppointment,
	update *uc.UpdateAppointment,
	move *uc.MoveAppointment,
	cancel *uc.CancelAppointment,
	complete *uc.CompleteAppointment,
	del *uc.DeleteAppointment,
	purge *uc.PurgeOldAppointments,
	listByDate *uc.ListAppointmentsByDate,
	avail *uc.GetAvailability,
	freeWindow *uc.GetFreeWindow,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		update:     update,
		move:       move,
		cancel:     cancel,
		complete:   complete,
		delete:     del,
		purge:      purge,
		listByDate: listByDate,
		avail:      avail,
		freeWindow: freeWindow,
	}
}

// ======================================================
// REQUESTS
// ======================================================

const (
	minDurationMinutes = 5
	maxDurationMinutes = 480
)

type CreateAppointmentRequest struct {
	Date       string `json:"date" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Duration   int    `json:"duration" binding:"required"`

	DisplayEmployee string `json:"display_employee"`

	Client      string `json:"client" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description"`
	ClientInfo  string `json:"client_info"`

	Price       float64 `json:"price"`
	PaymentType string  `json:"payment_type"`
	Starred     bool    `json:"starred"`
}

type UpdateAppointmentRequest struct {
	EmployeeID *string `json:"employee_id"`
	Time       *string `json:"time"`
	Duration   *int    `json:"duration"`

	DisplayEmployee *string `json:"display_employee"`

	Client      *string `json:"client"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	ClientInfo  *string `json:"client_info"`

	Price       *float64 `json:"price"`
	PaymentType *string  `json:"payment_type"`
	Starred     *bool    `json:"starred"`
}

type MoveAppointmentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Time       string `json:"time" binding:"required"`
}

type PurgeAppointmentsRequest struct {
	Before string `json:"before" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func durationOutOfBounds(d int) bool {
	return d < minDurationMinutes || d > maxDurationMinutes
}

// writeUsecaseError maps scheduling rejections and business errors onto
// the wire envelope. Anything else is a 500.
func writeUsecaseError(c *gin.Context, err error) {
	var rej *schedule.Rejection
	if errors.As(err, &rej) {
		httperr.Rejected(c, rej)
		return
	}

	switch httperr.BusinessCode(err) {
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case "waitlist_entry_not_found":
		httperr.NotFound(c, "waitlist_entry_not_found", "Waitlist entry not found.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Appointment is not in a state that allows this action.")
	case "":
		httperr.Internal(c, "internal_error", "Unexpected error.")
	default:
		httperr.BadRequest(c, httperr.BusinessCode(err), "Request rejected.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if durationOutOfBounds(req.Duration) {
		httperr.BadRequest(c, "invalid_duration", "Duration must be between 5 and 480 minutes.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), userID, uc.CreateAppointmentInput{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		Time:       req.Time,
		Duration:   req.Duration,

		DisplayEmployee: req.DisplayEmployee,

		Client:      req.Client,
		Phone:       req.Phone,
		Description: req.Description,
		ClientInfo:  req.ClientInfo,

		Price:       req.Price,
		PaymentType: req.PaymentType,
		Starred:     req.Starred,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if req.Duration != nil && durationOutOfBounds(*req.Duration) {
		httperr.BadRequest(c, "invalid_duration", "Duration must be between 5 and 480 minutes.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), userID, id, uc.UpdateAppointmentInput{
		EmployeeID: req.EmployeeID,
		Time:       req.Time,
		Duration:   req.Duration,

		DisplayEmployee: req.DisplayEmployee,

		Client:      req.Client,
		Phone:       req.Phone,
		Description: req.Description,
		ClientInfo:  req.ClientInfo,

		Price:       req.Price,
		PaymentType: req.PaymentType,
		Starred:     req.Starred,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// MOVE (drag and drop)
// ======================================================

func (h *AppointmentHandler) Move(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req MoveAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.move.Execute(c.Request.Context(), userID, domainMoveInput(id, req))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.cancel.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.complete.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// DELETE / PURGE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.delete.Execute(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeUsecaseError(c, err)
		return
	}
	c.Status(204)
}

func (h *AppointmentHandler) Purge(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PurgeAppointmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if !validDate(req.Before) {
		httperr.BadRequest(c, "invalid_date", "Invalid cutoff date.")
		return
	}

	purged, err := h.purge.Execute(c.Request.Context(), userID, req.Before)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"purged": purged})
}

// ======================================================
// DAY CALENDAR
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		httperr.BadRequest(c, "invalid_date", "A date query parameter is required.")
		return
	}

	day, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to load day calendar.")
		return
	}

	httpresp.OK(c, day)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	employeeID := c.Query("employee_id")
	if !validDate(date) || employeeID == "" {
		httperr.BadRequest(c, "missing_params", "date and employee_id are required.")
		return
	}

	duration := intQuery(c, "duration", 0)
	granularity := intQuery(c, "granularity", 0)

	slots, err := h.avail.Execute(c.Request.Context(), availabilityInput(
		date, employeeID, duration, granularity, c.Query("exclude_id"),
	))
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Failed to compute availability.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":        date,
		"employee_id": employeeID,
		"slots":       slots,
	})
}

func (h *AppointmentHandler) FreeWindow(c *gin.Context) {
	date := c.Query("date")
	employeeID := c.Query("employee_id")
	timeOfDay := c.Query("time")
	if !validDate(date) || employeeID == "" || timeOfDay == "" {
		httperr.BadRequest(c, "missing_params", "date, employee_id and time are required.")
		return
	}

	free, err := h.freeWindow.Execute(c.Request.Context(), freeWindowInput(
		date, employeeID, timeOfDay, c.Query("exclude_id"),
	))
	if err != nil {
		if _, perr := schedule.ParseClock(timeOfDay); perr != nil {
			httperr.BadRequest(c, "invalid_time", "Invalid time.")
			return
		}
		httperr.Internal(c, "failed_to_compute_window", "Failed to compute free window.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":         date,
		"employee_id":  employeeID,
		"time":         timeOfDay,
		"free_minutes": free,
	})
}
