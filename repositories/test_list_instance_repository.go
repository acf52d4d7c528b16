package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) GetTestListInstanceById(ctx context.Context, exec Executor,
	instanceId string,
) (models.TestListInstance, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestListInstanceColumn...).
			From(dbmodels.TABLE_TEST_LIST_INSTANCES).
			Where(squirrel.Eq{"id": instanceId}),
		dbmodels.AdaptTestListInstance,
	)
}

func (repo *QaDbRepository) ListTestListInstances(ctx context.Context, exec Executor,
	collectionId *string,
) ([]models.TestListInstance, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTestListInstanceColumn...).
		From(dbmodels.TABLE_TEST_LIST_INSTANCES).
		OrderBy("work_started DESC")
	if collectionId != nil {
		query = query.Where(squirrel.Eq{"unit_test_collection_id": *collectionId})
	}
	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptTestListInstance)
}

func (repo *QaDbRepository) CreateTestListInstance(ctx context.Context, exec Executor,
	instance models.TestListInstance,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TEST_LIST_INSTANCES).
			Columns(
				"id",
				"unit_test_collection_id",
				"test_list_id",
				"work_started",
				"work_completed",
				"in_progress",
				"comment",
				"all_reviewed",
				"created_by",
				"modified_by",
			).
			Values(
				instance.Id,
				instance.UnitTestCollectionId,
				instance.TestListId,
				instance.WorkStarted,
				instance.WorkCompleted,
				instance.InProgress,
				instance.Comment,
				instance.AllReviewed,
				instance.CreatedBy,
				instance.ModifiedBy,
			),
	)
}

func (repo *QaDbRepository) UpdateTestListInstance(ctx context.Context, exec Executor,
	instance models.TestListInstance,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_TEST_LIST_INSTANCES).
			Set("work_started", instance.WorkStarted).
			Set("work_completed", instance.WorkCompleted).
			Set("in_progress", instance.InProgress).
			Set("comment", instance.Comment).
			Set("all_reviewed", instance.AllReviewed).
			Set("reviewed_by", instance.ReviewedBy).
			Set("reviewed_at", instance.ReviewedAt).
			Set("modified_by", instance.ModifiedBy).
			Set("modified_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": instance.Id}),
	)
}

// BatchInsertTestInstances persists all children of a test list instance in
// one statement.
func (repo *QaDbRepository) BatchInsertTestInstances(ctx context.Context, exec Executor,
	instances []models.TestInstance,
) error {
	if len(instances) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_TEST_INSTANCES).
		Columns(
			"id",
			"test_list_instance_id",
			"test_id",
			"test_slug",
			"value",
			"string_value",
			"date_value",
			"datetime_value",
			"skipped",
			"comment",
			"ref_type",
			"ref_value",
			"tol_type",
			"act_low",
			"tol_low",
			"tol_high",
			"act_high",
			"pass_fail",
			"status_id",
			"order_index",
			"created_by",
		)

	for _, instance := range instances {
		refType, refValue := adaptReferenceSnapshot(instance.Reference)
		tolType, actLow, tolLow, tolHigh, actHigh := adaptToleranceSnapshot(instance.Tolerance)

		query = query.Values(
			instance.Id,
			instance.TestListInstanceId,
			instance.TestId,
			instance.TestSlug,
			instance.Value,
			instance.StringValue,
			instance.DateValue,
			instance.DatetimeValue,
			instance.Skipped,
			instance.Comment,
			refType,
			refValue,
			tolType,
			actLow,
			tolLow,
			tolHigh,
			actHigh,
			string(instance.PassFail),
			instance.StatusId,
			instance.Order,
			instance.CreatedBy,
		)
	}
	return ExecBuilder(ctx, exec, query)
}

func adaptReferenceSnapshot(ref *models.Reference) (*string, *float64) {
	if ref == nil {
		return nil, nil
	}
	refType := string(ref.Type)
	return &refType, &ref.Value
}

func adaptToleranceSnapshot(tol *models.Tolerance) (*string, *float64, *float64, *float64, *float64) {
	if tol == nil {
		return nil, nil, nil, nil, nil
	}
	tolType := string(tol.Type)
	return &tolType, tol.ActLow, tol.TolLow, tol.TolHigh, tol.ActHigh
}

func (repo *QaDbRepository) ListTestInstances(ctx context.Context, exec Executor,
	testListInstanceId string,
) ([]models.TestInstance, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestInstanceColumn...).
			From(dbmodels.TABLE_TEST_INSTANCES).
			Where(squirrel.Eq{"test_list_instance_id": testListInstanceId}).
			OrderBy("order_index"),
		dbmodels.AdaptTestInstance,
	)
}

// UpdateTestInstanceResult rewrites one child row's value, classification and
// status during an edit of the parent instance.
func (repo *QaDbRepository) UpdateTestInstanceResult(ctx context.Context, exec Executor,
	instance models.TestInstance,
) error {
	refType, refValue := adaptReferenceSnapshot(instance.Reference)
	tolType, actLow, tolLow, tolHigh, actHigh := adaptToleranceSnapshot(instance.Tolerance)

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_TEST_INSTANCES).
			Set("value", instance.Value).
			Set("string_value", instance.StringValue).
			Set("date_value", instance.DateValue).
			Set("datetime_value", instance.DatetimeValue).
			Set("skipped", instance.Skipped).
			Set("comment", instance.Comment).
			Set("ref_type", refType).
			Set("ref_value", refValue).
			Set("tol_type", tolType).
			Set("act_low", actLow).
			Set("tol_low", tolLow).
			Set("tol_high", tolHigh).
			Set("act_high", actHigh).
			Set("pass_fail", string(instance.PassFail)).
			Set("status_id", instance.StatusId).
			Where(squirrel.Eq{"id": instance.Id}),
	)
}

func (repo *QaDbRepository) UpdateTestInstanceStatus(ctx context.Context, exec Executor,
	testInstanceId, statusId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_TEST_INSTANCES).
			Set("status_id", statusId).
			Where(squirrel.Eq{"id": testInstanceId}),
	)
}

// SetReviewState stamps the aggregate's review rollup.
func (repo *QaDbRepository) SetReviewState(ctx context.Context, exec Executor,
	instanceId string, allReviewed bool, reviewedBy *string, reviewedAt *time.Time,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_TEST_LIST_INSTANCES).
			Set("all_reviewed", allReviewed).
			Set("reviewed_by", reviewedBy).
			Set("reviewed_at", reviewedAt).
			Where(squirrel.Eq{"id": instanceId}),
	)
}
