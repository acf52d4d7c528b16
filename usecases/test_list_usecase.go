package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
)

type testListRepository interface {
	ListTestLists(ctx context.Context, exec repositories.Executor) ([]models.TestListDefinition, error)
	GetTestListById(ctx context.Context, exec repositories.Executor, testListId string) (models.TestListDefinition, error)
	CreateTestList(ctx context.Context, exec repositories.Executor, input models.CreateTestListInput, newTestListId string, itemIds []string) error
}

type TestListUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         testListRepository
}

func (uc TestListUsecase) ListTestLists(ctx context.Context) ([]models.TestListDefinition, error) {
	return uc.repository.ListTestLists(ctx, uc.executorFactory.NewExecutor())
}

func (uc TestListUsecase) GetTestList(ctx context.Context, testListId string) (models.TestListDefinition, error) {
	return uc.repository.GetTestListById(ctx, uc.executorFactory.NewExecutor(), testListId)
}

// CreateTestList writes the list and its items, then reloads the expanded
// definition and validates it inside the same transaction: duplicate slugs
// across sublists or over-deep nesting roll the whole creation back.
func (uc TestListUsecase) CreateTestList(
	ctx context.Context,
	input models.CreateTestListInput,
) (models.TestListDefinition, error) {
	if err := models.ValidateSlug(input.Slug); err != nil {
		return models.TestListDefinition{}, err
	}
	for _, item := range input.Items {
		if (item.TestId == nil) == (item.SublistId == nil) {
			return models.TestListDefinition{}, errors.Wrap(models.BadParameterError,
				"each item must reference exactly one of a test or a sublist")
		}
	}

	testListId := uuid.NewString()
	itemIds := make([]string, len(input.Items))
	for i := range itemIds {
		itemIds[i] = uuid.NewString()
	}

	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.TestListDefinition, error) {
			if err := uc.repository.CreateTestList(ctx, tx, input, testListId, itemIds); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.TestListDefinition{}, errors.Wrapf(models.ConflictError, "slug '%s'", input.Slug)
				}
				if repositories.IsForeignKeyViolationError(err) {
					return models.TestListDefinition{}, errors.Wrap(models.BadParameterError,
						"an item references an unknown test or sublist")
				}
				return models.TestListDefinition{}, err
			}

			testList, err := uc.repository.GetTestListById(ctx, tx, testListId)
			if err != nil {
				return models.TestListDefinition{}, err
			}
			if err := testList.Validate(); err != nil {
				return models.TestListDefinition{}, err
			}
			return testList, nil
		})
}
