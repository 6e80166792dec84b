package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opal-salon/salon-scheduler/internal/schedule"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Rejected writes a scheduling rejection: 409 for slot conflicts so the
// UI can jump to the conflicting appointment, 400 otherwise.
func Rejected(c *gin.Context, rej *schedule.Rejection) {
	status := http.StatusBadRequest
	if rej.Reason == schedule.ReasonSlotConflict {
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"error_code": string(rej.Reason),
		"rejection":  rej,
	})
}
