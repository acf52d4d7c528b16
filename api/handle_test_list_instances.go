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

func handleListTestListInstances(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var collectionId *string
		if value := c.Query("unit_test_collection_id"); value != "" {
			collectionId = &value
		}

		usecase := uc.NewTestListInstanceUsecase()
		instances, err := usecase.ListTestListInstances(c.Request.Context(), collectionId)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"test_list_instances": pure_utils.Map(instances, dto.AdaptTestListInstanceDto),
		})
	}
}

func handleGetTestListInstance(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTestListInstanceUsecase()
		detail, err := usecase.GetTestListInstance(c.Request.Context(), c.Param("instance_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test_list_instance": dto.AdaptTestListInstanceDetailDto(detail)})
	}
}

func handlePerformQC(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.SubmissionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		submission, err := body.Adapt()
		if presentError(c, err) {
			return
		}

		usecase := uc.NewTestListInstanceUsecase()
		detail, err := usecase.PerformQC(c.Request.Context(), submission)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"test_list_instance": dto.AdaptTestListInstanceDetailDto(detail)})
	}
}

func handleUpdateQC(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.SubmissionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		submission, err := body.Adapt()
		if presentError(c, err) {
			return
		}

		usecase := uc.NewTestListInstanceUsecase()
		detail, err := usecase.UpdateQC(c.Request.Context(), c.Param("instance_id"), submission)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test_list_instance": dto.AdaptTestListInstanceDetailDto(detail)})
	}
}

func handleReview(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.ReviewBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTestListInstanceUsecase()
		detail, err := usecase.Review(c.Request.Context(), body.Adapt(c.Param("instance_id")))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test_list_instance": dto.AdaptTestListInstanceDetailDto(detail)})
	}
}
