package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) ListUnits(ctx context.Context, exec Executor) ([]models.Unit, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUnitColumn...).
			From(dbmodels.TABLE_UNITS).
			OrderBy("name"),
		dbmodels.AdaptUnit,
	)
}

func (repo *QaDbRepository) GetUnitById(ctx context.Context, exec Executor, unitId string) (models.Unit, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUnitColumn...).
			From(dbmodels.TABLE_UNITS).
			Where(squirrel.Eq{"id": unitId}),
		dbmodels.AdaptUnit,
	)
}

func (repo *QaDbRepository) CreateUnit(ctx context.Context, exec Executor,
	name, site string, newUnitId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_UNITS).
			Columns("id", "name", "site", "active").
			Values(newUnitId, name, site, true),
	)
}

func (repo *QaDbRepository) GetUnitTestCollectionById(ctx context.Context, exec Executor,
	collectionId string,
) (models.UnitTestCollection, error) {
	collection, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectUnitTestCollectionColumn...).
			From(dbmodels.TABLE_UNIT_TEST_COLLECTIONS).
			Where(squirrel.Eq{"id": collectionId}),
		dbmodels.AdaptUnitTestCollection,
	)
	if errors.Is(err, models.NotFoundError) {
		return models.UnitTestCollection{}, errors.Wrapf(models.ErrCollectionNotFound, "id '%s'", collectionId)
	}
	return collection, err
}

func (repo *QaDbRepository) ListUnitTestCollections(ctx context.Context, exec Executor,
	unitId *string,
) ([]models.UnitTestCollection, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectUnitTestCollectionColumn...).
		From(dbmodels.TABLE_UNIT_TEST_COLLECTIONS).
		OrderBy("name")
	if unitId != nil {
		query = query.Where(squirrel.Eq{"unit_id": *unitId})
	}
	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptUnitTestCollection)
}

func (repo *QaDbRepository) CreateUnitTestCollection(ctx context.Context, exec Executor,
	input models.CreateUnitTestCollectionInput, newCollectionId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_UNIT_TEST_COLLECTIONS).
			Columns("id", "unit_id", "test_list_id", "name", "frequency_days").
			Values(newCollectionId, input.UnitId, input.TestListId, input.Name, input.FrequencyDays),
	)
}

// UpdateUnitTestCollectionDueDate advances the scheduling state after a
// completed performance.
func (repo *QaDbRepository) UpdateUnitTestCollectionDueDate(ctx context.Context, exec Executor,
	collectionId string, dueDate *time.Time,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_UNIT_TEST_COLLECTIONS).
			Set("due_date", dueDate).
			Where(squirrel.Eq{"id": collectionId}),
	)
}
