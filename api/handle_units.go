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

func handleListUnits(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewUnitUsecase()
		units, err := usecase.ListUnits(c.Request.Context())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"units": pure_utils.Map(units, dto.AdaptUnitDto)})
	}
}

func handleGetUnit(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewUnitUsecase()
		unit, err := usecase.GetUnit(c.Request.Context(), c.Param("unit_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"unit": dto.AdaptUnitDto(unit)})
	}
}

func handleCreateUnit(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateUnitBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewUnitUsecase()
		unit, err := usecase.CreateUnit(c.Request.Context(), body.Name, body.Site)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"unit": dto.AdaptUnitDto(unit)})
	}
}

func handleListUnitTestInfos(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewUnitUsecase()
		infos, err := usecase.ListUnitTestInfos(c.Request.Context(), c.Param("unit_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"unit_test_infos": pure_utils.Map(infos, dto.AdaptUnitTestInfoDto)})
	}
}

func handleSetUnitTestInfo(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.SetUnitTestInfoBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewUnitUsecase()
		info, err := usecase.SetUnitTestInfo(c.Request.Context(), body.Adapt(c.Param("unit_id")))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"unit_test_info": dto.AdaptUnitTestInfoDto(info)})
	}
}

func handleListUnitTestCollections(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var unitId *string
		if value := c.Query("unit_id"); value != "" {
			unitId = &value
		}

		usecase := uc.NewUnitUsecase()
		collections, err := usecase.ListUnitTestCollections(c.Request.Context(), unitId)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"unit_test_collections": pure_utils.Map(collections, dto.AdaptUnitTestCollectionDto),
		})
	}
}

func handleGetUnitTestCollection(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewUnitUsecase()
		collection, err := usecase.GetUnitTestCollection(c.Request.Context(), c.Param("collection_id"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"unit_test_collection": dto.AdaptUnitTestCollectionDto(collection)})
	}
}

func handleCreateUnitTestCollection(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.CreateUnitTestCollectionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewUnitUsecase()
		collection, err := usecase.CreateUnitTestCollection(c.Request.Context(), body.Adapt())
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"unit_test_collection": dto.AdaptUnitTestCollectionDto(collection)})
	}
}
