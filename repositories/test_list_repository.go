package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) ListTestLists(ctx context.Context, exec Executor) ([]models.TestListDefinition, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestListColumn...).
			From(dbmodels.TABLE_TEST_LISTS).
			OrderBy("name"),
		dbmodels.AdaptTestList,
	)
}

// GetTestListById loads a list with its items, expanding sublist items one
// level deep.
func (repo *QaDbRepository) GetTestListById(ctx context.Context, exec Executor,
	testListId string,
) (models.TestListDefinition, error) {
	return repo.getTestList(ctx, exec, testListId, true)
}

func (repo *QaDbRepository) getTestList(ctx context.Context, exec Executor,
	testListId string, withSublists bool,
) (models.TestListDefinition, error) {
	testList, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestListColumn...).
			From(dbmodels.TABLE_TEST_LISTS).
			Where(squirrel.Eq{"id": testListId}),
		dbmodels.AdaptTestList,
	)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.TestListDefinition{}, errors.Wrapf(models.ErrTestListNotFound, "id '%s'", testListId)
		}
		return models.TestListDefinition{}, err
	}

	items, err := SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestListItemColumn...).
			From(dbmodels.TABLE_TEST_LIST_ITEMS).
			Where(squirrel.Eq{"test_list_id": testListId}).
			OrderBy("order_index"),
		func(db dbmodels.DBTestListItem) (dbmodels.DBTestListItem, error) { return db, nil },
	)
	if err != nil {
		return models.TestListDefinition{}, err
	}

	for _, item := range items {
		listItem := models.TestListItem{Order: item.OrderIndex}

		switch {
		case item.TestId != nil:
			test, err := repo.GetTestDefinitionById(ctx, exec, *item.TestId)
			if err != nil {
				return models.TestListDefinition{}, err
			}
			listItem.Test = &test

		case item.SublistId != nil:
			if !withSublists {
				return models.TestListDefinition{}, models.ErrSublistTooDeep
			}
			sublist, err := repo.getTestList(ctx, exec, *item.SublistId, false)
			if err != nil {
				return models.TestListDefinition{}, err
			}
			listItem.Sublist = &sublist
		}

		testList.Items = append(testList.Items, listItem)
	}

	return testList, nil
}

func (repo *QaDbRepository) CreateTestList(ctx context.Context, exec Executor,
	input models.CreateTestListInput, newTestListId string, itemIds []string,
) error {
	err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TEST_LISTS).
			Columns("id", "name", "slug", "description").
			Values(newTestListId, input.Name, input.Slug, input.Description),
	)
	if err != nil {
		return err
	}

	if len(input.Items) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_TEST_LIST_ITEMS).
		Columns("id", "test_list_id", "order_index", "test_id", "sublist_id")
	for i, item := range input.Items {
		query = query.Values(itemIds[i], newTestListId, item.Order, item.TestId, item.SublistId)
	}
	return ExecBuilder(ctx, exec, query)
}
