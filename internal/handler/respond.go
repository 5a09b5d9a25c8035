package handler

import (
	"errors"
	"log"
	"net/http"

	"duit/internal/domain"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondOK writes the {message, data} envelope shared by all endpoints.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError is the single mapping layer from the error taxonomy to HTTP.
// Unrecognized errors become a generic 500 with no internal detail leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrRemainingExceeded),
		errors.Is(err, domain.ErrInvalidCategoryType):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrExternalService):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCreds):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
