package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) ListTestInstanceStatuses(ctx context.Context, exec Executor) ([]models.TestInstanceStatus, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestInstanceStatusColumn...).
			From(dbmodels.TABLE_TEST_INSTANCE_STATUSES).
			OrderBy("name"),
		dbmodels.AdaptTestInstanceStatus,
	)
}

func (repo *QaDbRepository) GetTestInstanceStatusById(ctx context.Context, exec Executor,
	statusId string,
) (models.TestInstanceStatus, error) {
	status, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestInstanceStatusColumn...).
			From(dbmodels.TABLE_TEST_INSTANCE_STATUSES).
			Where(squirrel.Eq{"id": statusId}),
		dbmodels.AdaptTestInstanceStatus,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.TestInstanceStatus{}, errors.Wrapf(models.ErrStatusNotFound, "id '%s'", statusId)
	}
	return status, err
}

// GetDefaultTestInstanceStatus returns the status applied when the submitting
// user does not choose one.
func (repo *QaDbRepository) GetDefaultTestInstanceStatus(ctx context.Context, exec Executor) (models.TestInstanceStatus, error) {
	status, err := SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestInstanceStatusColumn...).
			From(dbmodels.TABLE_TEST_INSTANCE_STATUSES).
			Where(squirrel.Eq{"is_default": true}).
			Limit(1),
		dbmodels.AdaptTestInstanceStatus,
	)
	if err != nil {
		return models.TestInstanceStatus{}, err
	}
	if status == nil {
		return models.TestInstanceStatus{}, models.ErrNoDefaultStatus
	}
	return *status, nil
}

func (repo *QaDbRepository) CreateTestInstanceStatus(ctx context.Context, exec Executor,
	input models.CreateTestInstanceStatusInput, newStatusId string,
) error {
	if input.IsDefault {
		// a single default at a time
		err := ExecBuilder(
			ctx,
			exec,
			NewQueryBuilder().
				Update(dbmodels.TABLE_TEST_INSTANCE_STATUSES).
				Set("is_default", false).
				Where(squirrel.Eq{"is_default": true}),
		)
		if err != nil {
			return err
		}
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TEST_INSTANCE_STATUSES).
			Columns("id", "name", "slug", "description", "is_default", "requires_review").
			Values(newStatusId, input.Name, input.Slug, input.Description,
				input.IsDefault, input.RequiresReview),
	)
}

func (repo *QaDbRepository) ListAutoReviewRules(ctx context.Context, exec Executor) (models.AutoReviewRuleSet, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAutoReviewRuleColumn...).
			From(dbmodels.TABLE_AUTO_REVIEW_RULES),
		dbmodels.AdaptAutoReviewRule,
	)
}
