package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/qatrackplus/qatrack-backend/dto"
	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/pure_utils"
	"github.com/qatrackplus/qatrack-backend/usecases"
)

func handleListStatuses(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewStatusUsecase()
		statuses, err := usecase.ListStatuses(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"statuses": pure_utils.Map(statuses, dto.AdaptTestInstanceStatusDto)})
	}
}

func handleCreateStatus(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateStatusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewStatusUsecase()
		status, err := usecase.CreateStatus(c.Request.Context(), body.Adapt())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": dto.AdaptTestInstanceStatusDto(status)})
	}
}

func handleListAutoReviewRules(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewStatusUsecase()
		rules, err := usecase.ListAutoReviewRules(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"auto_review_rules": pure_utils.Map(rules, dto.AdaptAutoReviewRuleDto)})
	}
}
