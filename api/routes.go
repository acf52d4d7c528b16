package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qatrackplus/qatrack-backend/usecases"
)

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe())

	r.GET("/tests", handleListTests(uc))
	r.POST("/tests", handleCreateTest(uc))
	r.GET("/tests/:test_id", handleGetTest(uc))
	r.PATCH("/tests/:test_id", handleUpdateTest(uc))

	r.GET("/test-lists", handleListTestLists(uc))
	r.POST("/test-lists", handleCreateTestList(uc))
	r.GET("/test-lists/:test_list_id", handleGetTestList(uc))

	r.GET("/units", handleListUnits(uc))
	r.POST("/units", handleCreateUnit(uc))
	r.GET("/units/:unit_id", handleGetUnit(uc))
	r.GET("/units/:unit_id/test-infos", handleListUnitTestInfos(uc))
	r.PUT("/units/:unit_id/test-infos", handleSetUnitTestInfo(uc))

	r.GET("/unit-test-collections", handleListUnitTestCollections(uc))
	r.POST("/unit-test-collections", handleCreateUnitTestCollection(uc))
	r.GET("/unit-test-collections/:collection_id", handleGetUnitTestCollection(uc))

	r.GET("/test-instance-statuses", handleListStatuses(uc))
	r.POST("/test-instance-statuses", handleCreateStatus(uc))
	r.GET("/auto-review-rules", handleListAutoReviewRules(uc))

	r.GET("/test-list-instances", handleListTestListInstances(uc))
	r.POST("/test-list-instances", handlePerformQC(uc))
	r.GET("/test-list-instances/:instance_id", handleGetTestListInstance(uc))
	r.PUT("/test-list-instances/:instance_id", handleUpdateQC(uc))
	r.PATCH("/test-list-instances/:instance_id/review", handleReview(uc))

	r.POST("/composite-calculation", handleCompositeCalculation(uc))
}
