package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

// GetUnitTestInfo returns the active reference/tolerance for one (unit, test)
// pair, nil when none has been configured.
func (repo *QaDbRepository) GetUnitTestInfo(ctx context.Context, exec Executor,
	unitId, testId string,
) (*models.UnitTestInfo, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUnitTestInfoColumn...).
			From(dbmodels.TABLE_UNIT_TEST_INFOS).
			Where(squirrel.Eq{"unit_id": unitId, "test_id": testId}),
		dbmodels.AdaptUnitTestInfo,
	)
}

func (repo *QaDbRepository) ListUnitTestInfos(ctx context.Context, exec Executor,
	unitId string,
) ([]models.UnitTestInfo, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUnitTestInfoColumn...).
			From(dbmodels.TABLE_UNIT_TEST_INFOS).
			Where(squirrel.Eq{"unit_id": unitId}),
		dbmodels.AdaptUnitTestInfo,
	)
}

// SetUnitTestInfo upserts the active reference/tolerance for a (unit, test)
// pair. Existing test instances keep their snapshots.
func (repo *QaDbRepository) SetUnitTestInfo(ctx context.Context, exec Executor,
	input models.SetUnitTestInfoInput, newInfoId string,
) error {
	var refType *string
	var refValue *float64
	if input.Reference != nil {
		value := string(input.Reference.Type)
		refType = &value
		refValue = &input.Reference.Value
	}

	var tolType *string
	var actLow, tolLow, tolHigh, actHigh *float64
	if input.Tolerance != nil {
		value := string(input.Tolerance.Type)
		tolType = &value
		actLow = input.Tolerance.ActLow
		tolLow = input.Tolerance.TolLow
		tolHigh = input.Tolerance.TolHigh
		actHigh = input.Tolerance.ActHigh
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_UNIT_TEST_INFOS).
			Columns(
				"id",
				"unit_id",
				"test_id",
				"reference_type",
				"reference_value",
				"tolerance_type",
				"act_low",
				"tol_low",
				"tol_high",
				"act_high",
			).
			Values(
				newInfoId,
				input.UnitId,
				input.TestId,
				refType,
				refValue,
				tolType,
				actLow,
				tolLow,
				tolHigh,
				actHigh,
			).
			Suffix(`ON CONFLICT (unit_id, test_id) DO UPDATE SET
				reference_type = EXCLUDED.reference_type,
				reference_value = EXCLUDED.reference_value,
				tolerance_type = EXCLUDED.tolerance_type,
				act_low = EXCLUDED.act_low,
				tol_low = EXCLUDED.tol_low,
				tol_high = EXCLUDED.tol_high,
				act_high = EXCLUDED.act_high,
				updated_at = now()`),
	)
}
