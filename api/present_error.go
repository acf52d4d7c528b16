package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

// presentError maps domain errors to http status codes and reports whether an
// error was written. Handlers call it as `if presentError(c, err) { return }`.
func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationError models.ValidationError
	if errors.As(err, &validationError) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validationError.Error(),
			"errors":  validationError.Messages,
		})
		return true
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, models.UnprocessableEntityError):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		ctx := c.Request.Context()
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
	return true
}
