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

func handleListTestLists(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTestListUsecase()
		testLists, err := usecase.ListTestLists(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test_lists": pure_utils.Map(testLists, dto.AdaptTestListDto)})
	}
}

func handleGetTestList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTestListUsecase()
		testList, err := usecase.GetTestList(c.Request.Context(), c.Param("test_list_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"test_list": dto.AdaptTestListDto(testList)})
	}
}

func handleCreateTestList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateTestListBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTestListUsecase()
		testList, err := usecase.CreateTestList(c.Request.Context(), body.Adapt())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"test_list": dto.AdaptTestListDto(testList)})
	}
}
