package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/qatrackplus/qatrack-backend/dto"
	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/usecases"
)

func handleCompositeCalculation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CompositeCalculationBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewCompositeCalculationUsecase()
		output, err := usecase.CalculateComposites(c.Request.Context(), body.TestListId,
			models.Submission{Tests: body.Tests})
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptResolveOutputDto(output))
	}
}
