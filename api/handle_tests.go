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

func handleListTests(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTestDefinitionUsecase()
		tests, err := usecase.ListTests(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"tests": pure_utils.Map(tests, dto.AdaptTestDefinitionDto)})
	}
}

func handleGetTest(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTestDefinitionUsecase()
		test, err := usecase.GetTest(c.Request.Context(), c.Param("test_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test": dto.AdaptTestDefinitionDto(test)})
	}
}

func handleCreateTest(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateTestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTestDefinitionUsecase()
		test, err := usecase.CreateTest(c.Request.Context(), body.Adapt())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"test": dto.AdaptTestDefinitionDto(test)})
	}
}

func handleUpdateTest(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.UpdateTestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTestDefinitionUsecase()
		test, err := usecase.UpdateTest(c.Request.Context(), body.Adapt(c.Param("test_id")))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test": dto.AdaptTestDefinitionDto(test)})
	}
}
