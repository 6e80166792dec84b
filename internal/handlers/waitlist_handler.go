package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/opal-salon/salon-scheduler/internal/httperr"
	"github.com/opal-salon/salon-scheduler/internal/httpresp"
	"github.com/opal-salon/salon-scheduler/internal/middleware"
	uc "github.com/opal-salon/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type WaitlistHandler struct {
	list   *uc.ListWaitlist
	add    *uc.AddWaitlistEntry
	update *uc.UpdateWaitlistEntry
	remove *uc.RemoveWaitlistEntry
}

func NewWaitlistHandler(
	list *uc.ListWaitlist,
	add *uc.AddWaitlistEntry,
	update *uc.UpdateWaitlistEntry,
	remove *uc.RemoveWaitlistEntry,
) *WaitlistHandler {
	return &WaitlistHandler{
		list:   list,
		add:    add,
		update: update,
		remove: remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWaitlistRequest struct {
	Date  string `json:"date" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Prefs string `json:"prefs"`
}

type UpdateWaitlistRequest struct {
	Date  *string `json:"date"`
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Prefs *string `json:"prefs"`
}

// ======================================================
// LIST
// ======================================================

func (h *WaitlistHandler) List(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		date = ""
	}

	entries, err := h.list.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_waitlist", "Failed to list waitlist entries.")
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// CREATE
// ======================================================

func (h *WaitlistHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if !validDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Invalid waitlist date.")
		return
	}

	entry, err := h.add.Execute(c.Request.Context(), userID, uc.AddWaitlistEntryInput{
		Date:  req.Date,
		Name:  req.Name,
		Phone: req.Phone,
		Prefs: req.Prefs,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.Created(c, entry)
}

// ======================================================
// UPDATE
// ======================================================

func (h *WaitlistHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}
	if req.Date != nil && !validDate(*req.Date) {
		httperr.BadRequest(c, "invalid_date", "Invalid waitlist date.")
		return
	}

	entry, err := h.update.Execute(c.Request.Context(), userID, c.Param("id"), uc.UpdateWaitlistEntryInput{
		Date:  req.Date,
		Name:  req.Name,
		Phone: req.Phone,
		Prefs: req.Prefs,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

// ======================================================
// DELETE
// ======================================================

func (h *WaitlistHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.remove.Execute(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.Status(204)
}
