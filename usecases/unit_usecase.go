package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
)

type unitRepository interface {
	ListUnits(ctx context.Context, exec repositories.Executor) ([]models.Unit, error)
	GetUnitById(ctx context.Context, exec repositories.Executor, unitId string) (models.Unit, error)
	CreateUnit(ctx context.Context, exec repositories.Executor, name, site string, newUnitId string) error
	GetUnitTestCollectionById(ctx context.Context, exec repositories.Executor, collectionId string) (models.UnitTestCollection, error)
	ListUnitTestCollections(ctx context.Context, exec repositories.Executor, unitId *string) ([]models.UnitTestCollection, error)
	CreateUnitTestCollection(ctx context.Context, exec repositories.Executor, input models.CreateUnitTestCollectionInput, newCollectionId string) error
	GetTestListById(ctx context.Context, exec repositories.Executor, testListId string) (models.TestListDefinition, error)
	GetTestDefinitionById(ctx context.Context, exec repositories.Executor, testId string) (models.TestDefinition, error)
	GetUnitTestInfo(ctx context.Context, exec repositories.Executor, unitId, testId string) (*models.UnitTestInfo, error)
	ListUnitTestInfos(ctx context.Context, exec repositories.Executor, unitId string) ([]models.UnitTestInfo, error)
	SetUnitTestInfo(ctx context.Context, exec repositories.Executor, input models.SetUnitTestInfoInput, newInfoId string) error
}

type UnitUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         unitRepository
}

func (uc UnitUsecase) ListUnits(ctx context.Context) ([]models.Unit, error) {
	return uc.repository.ListUnits(ctx, uc.executorFactory.NewExecutor())
}

func (uc UnitUsecase) GetUnit(ctx context.Context, unitId string) (models.Unit, error) {
	return uc.repository.GetUnitById(ctx, uc.executorFactory.NewExecutor(), unitId)
}

func (uc UnitUsecase) CreateUnit(ctx context.Context, name, site string) (models.Unit, error) {
	if name == "" {
		return models.Unit{}, errors.Wrap(models.BadParameterError, "unit name is required")
	}
	unitId := uuid.NewString()
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.Unit, error) {
			if err := uc.repository.CreateUnit(ctx, tx, name, site, unitId); err != nil {
				return models.Unit{}, err
			}
			return uc.repository.GetUnitById(ctx, tx, unitId)
		})
}

func (uc UnitUsecase) GetUnitTestCollection(ctx context.Context, collectionId string) (models.UnitTestCollection, error) {
	return uc.repository.GetUnitTestCollectionById(ctx, uc.executorFactory.NewExecutor(), collectionId)
}

func (uc UnitUsecase) ListUnitTestCollections(ctx context.Context, unitId *string) ([]models.UnitTestCollection, error) {
	return uc.repository.ListUnitTestCollections(ctx, uc.executorFactory.NewExecutor(), unitId)
}

// CreateUnitTestCollection assigns a test list to a unit. The referenced unit
// and test list must both exist.
func (uc UnitUsecase) CreateUnitTestCollection(
	ctx context.Context,
	input models.CreateUnitTestCollectionInput,
) (models.UnitTestCollection, error) {
	if input.FrequencyDays != nil && *input.FrequencyDays <= 0 {
		return models.UnitTestCollection{}, errors.Wrap(models.BadParameterError,
			"frequency_days must be strictly positive")
	}

	collectionId := uuid.NewString()
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.UnitTestCollection, error) {
			if _, err := uc.repository.GetUnitById(ctx, tx, input.UnitId); err != nil {
				return models.UnitTestCollection{}, err
			}
			if _, err := uc.repository.GetTestListById(ctx, tx, input.TestListId); err != nil {
				return models.UnitTestCollection{}, err
			}
			if err := uc.repository.CreateUnitTestCollection(ctx, tx, input, collectionId); err != nil {
				return models.UnitTestCollection{}, err
			}
			return uc.repository.GetUnitTestCollectionById(ctx, tx, collectionId)
		})
}

func (uc UnitUsecase) ListUnitTestInfos(ctx context.Context, unitId string) ([]models.UnitTestInfo, error) {
	return uc.repository.ListUnitTestInfos(ctx, uc.executorFactory.NewExecutor(), unitId)
}

// SetUnitTestInfo replaces the active reference/tolerance for a (unit, test)
// pair. Historical test instances keep the snapshot taken when they were
// created.
func (uc UnitUsecase) SetUnitTestInfo(
	ctx context.Context,
	input models.SetUnitTestInfoInput,
) (models.UnitTestInfo, error) {
	if input.Reference != nil && input.Reference.Type != models.ReferenceValue &&
		input.Reference.Type != models.ReferenceBoolean {
		return models.UnitTestInfo{}, errors.Wrap(models.BadParameterError, "unknown reference type")
	}
	if input.Tolerance != nil && input.Tolerance.Type != models.ToleranceAbsolute &&
		input.Tolerance.Type != models.TolerancePercent {
		return models.UnitTestInfo{}, errors.Wrap(models.BadParameterError, "unknown tolerance type")
	}

	infoId := uuid.NewString()
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.UnitTestInfo, error) {
			if _, err := uc.repository.GetUnitById(ctx, tx, input.UnitId); err != nil {
				return models.UnitTestInfo{}, err
			}
			if _, err := uc.repository.GetTestDefinitionById(ctx, tx, input.TestId); err != nil {
				return models.UnitTestInfo{}, err
			}
			if err := uc.repository.SetUnitTestInfo(ctx, tx, input, infoId); err != nil {
				return models.UnitTestInfo{}, err
			}
			info, err := uc.repository.GetUnitTestInfo(ctx, tx, input.UnitId, input.TestId)
			if err != nil {
				return models.UnitTestInfo{}, err
			}
			if info == nil {
				return models.UnitTestInfo{}, errors.New("unit test info not found after upsert")
			}
			return *info, nil
		})
}
