package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opal-salon/salon-scheduler/internal/httpresp"
	"github.com/opal-salon/salon-scheduler/internal/models"
	"github.com/opal-salon/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// CustomerHandler serves the phone-keyed customer directory used to
// prefill the booking form.
type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Customer{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone_key LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("last_appointment_at DESC NULLS LAST").
		Limit(100).
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	httpresp.List(c, customers)
}

// ======================================================
// LOOKUP BY PHONE
// ======================================================

func (h *CustomerHandler) GetByPhone(c *gin.Context) {
	key := validators.PhoneKey(c.Param("phone"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	var customer models.Customer
	if err := h.db.Where("phone_key = ?", key).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	httpresp.OK(c, customer)
}

// ======================================================
// UPSERT
// ======================================================

type UpsertCustomerRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Notes      string `json:"notes"`
	ClientInfo string `json:"client_info"`
}

func (h *CustomerHandler) Upsert(c *gin.Context) {
	var req UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	key := validators.PhoneKey(req.Phone)
	if key == "" || !validators.IsPhonePlausible(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	customer := models.Customer{
		PhoneKey:   key,
		Phone:      strings.TrimSpace(req.Phone),
		Name:       strings.TrimSpace(req.Name),
		Notes:      req.Notes,
		ClientInfo: req.ClientInfo,
	}

	err := h.db.
		Where("phone_key = ?", key).
		Assign(map[string]any{
			"phone":       customer.Phone,
			"name":        customer.Name,
			"notes":       customer.Notes,
			"client_info": customer.ClientInfo,
		}).
		FirstOrCreate(&customer).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upsert_customer"})
		return
	}

	httpresp.OK(c, customer)
}
