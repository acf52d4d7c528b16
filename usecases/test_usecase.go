package usecases

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/models/calc"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
)

type testDefinitionRepository interface {
	GetTestDefinitionById(ctx context.Context, exec repositories.Executor, testId string) (models.TestDefinition, error)
	ListTestDefinitions(ctx context.Context, exec repositories.Executor) ([]models.TestDefinition, error)
	CreateTestDefinition(ctx context.Context, exec repositories.Executor, input models.CreateTestDefinitionInput, newTestId string) error
	UpdateTestDefinition(ctx context.Context, exec repositories.Executor, input models.UpdateTestDefinitionInput) error
}

type TestDefinitionUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         testDefinitionRepository
}

func (uc TestDefinitionUsecase) ListTests(ctx context.Context) ([]models.TestDefinition, error) {
	return uc.repository.ListTestDefinitions(ctx, uc.executorFactory.NewExecutor())
}

func (uc TestDefinitionUsecase) GetTest(ctx context.Context, testId string) (models.TestDefinition, error) {
	return uc.repository.GetTestDefinitionById(ctx, uc.executorFactory.NewExecutor(), testId)
}

// CreateTest validates the definition, including a parse check on the
// calculation procedure, so broken procedures are rejected at save time rather
// than at the first performance.
func (uc TestDefinitionUsecase) CreateTest(
	ctx context.Context,
	input models.CreateTestDefinitionInput,
) (models.TestDefinition, error) {
	definition := models.TestDefinition{
		Name:          input.Name,
		Slug:          input.Slug,
		Description:   input.Description,
		Type:          input.Type,
		Procedure:     input.Procedure,
		ConstantValue: input.ConstantValue,
		Choices:       input.Choices,
		FormatString:  input.FormatString,
	}
	if definition.Type == models.TestTypeUnknown {
		return models.TestDefinition{}, errors.Wrap(models.BadParameterError, "unknown test type")
	}
	if err := definition.Validate(); err != nil {
		return models.TestDefinition{}, err
	}
	if err := checkProcedure(input.Procedure); err != nil {
		return models.TestDefinition{}, err
	}

	testId := uuid.NewString()
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.TestDefinition, error) {
			if err := uc.repository.CreateTestDefinition(ctx, tx, input, testId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.TestDefinition{}, errors.Wrapf(models.ConflictError, "slug '%s'", input.Slug)
				}
				return models.TestDefinition{}, err
			}
			return uc.repository.GetTestDefinitionById(ctx, tx, testId)
		})
}

func (uc TestDefinitionUsecase) UpdateTest(
	ctx context.Context,
	input models.UpdateTestDefinitionInput,
) (models.TestDefinition, error) {
	if input.Procedure != nil {
		if err := checkProcedure(*input.Procedure); err != nil {
			return models.TestDefinition{}, err
		}
	}
	if input.FormatString != nil {
		if err := models.ValidateFormatString(*input.FormatString); err != nil {
			return models.TestDefinition{}, err
		}
	}

	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.TestDefinition, error) {
			if _, err := uc.repository.GetTestDefinitionById(ctx, tx, input.Id); err != nil {
				return models.TestDefinition{}, err
			}
			if err := uc.repository.UpdateTestDefinition(ctx, tx, input); err != nil {
				return models.TestDefinition{}, err
			}
			return uc.repository.GetTestDefinitionById(ctx, tx, input.Id)
		})
}

func checkProcedure(procedure string) error {
	if strings.TrimSpace(procedure) == "" {
		return nil
	}
	if _, err := calc.ParseProcedure(procedure); err != nil {
		return errors.Wrapf(models.BadParameterError, "invalid calculation procedure: %s", err.Error())
	}
	return nil
}
