package usecases

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
)

type statusRepository interface {
	ListTestInstanceStatuses(ctx context.Context, exec repositories.Executor) ([]models.TestInstanceStatus, error)
	GetTestInstanceStatusById(ctx context.Context, exec repositories.Executor, statusId string) (models.TestInstanceStatus, error)
	CreateTestInstanceStatus(ctx context.Context, exec repositories.Executor, input models.CreateTestInstanceStatusInput, newStatusId string) error
	ListAutoReviewRules(ctx context.Context, exec repositories.Executor) (models.AutoReviewRuleSet, error)
}

type StatusUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         statusRepository
}

func (uc StatusUsecase) ListStatuses(ctx context.Context) ([]models.TestInstanceStatus, error) {
	return uc.repository.ListTestInstanceStatuses(ctx, uc.executorFactory.NewExecutor())
}

func (uc StatusUsecase) GetStatus(ctx context.Context, statusId string) (models.TestInstanceStatus, error) {
	return uc.repository.GetTestInstanceStatusById(ctx, uc.executorFactory.NewExecutor(), statusId)
}

func (uc StatusUsecase) CreateStatus(
	ctx context.Context,
	input models.CreateTestInstanceStatusInput,
) (models.TestInstanceStatus, error) {
	if input.Name == "" {
		return models.TestInstanceStatus{}, errors.Wrap(models.BadParameterError, "status name is required")
	}
	if err := models.ValidateSlug(input.Slug); err != nil {
		return models.TestInstanceStatus{}, err
	}

	statusId := uuid.NewString()
	return executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.TestInstanceStatus, error) {
			if err := uc.repository.CreateTestInstanceStatus(ctx, tx, input, statusId); err != nil {
				if repositories.IsUniqueViolationError(err) {
					return models.TestInstanceStatus{}, errors.Wrapf(models.ConflictError, "slug '%s'", input.Slug)
				}
				return models.TestInstanceStatus{}, err
			}
			return uc.repository.GetTestInstanceStatusById(ctx, tx, statusId)
		})
}

func (uc StatusUsecase) ListAutoReviewRules(ctx context.Context) (models.AutoReviewRuleSet, error) {
	return uc.repository.ListAutoReviewRules(ctx, uc.executorFactory.NewExecutor())
}
