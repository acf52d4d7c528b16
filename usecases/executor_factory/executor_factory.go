package executor_factory

import (
	"context"

	"github.com/qatrackplus/qatrack-backend/repositories"
)

type ExecutorFactory interface {
	NewExecutor() repositories.Executor
}

type TransactionFactory interface {
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

type executorFactoryRepository interface {
	GetExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error
}

type DbExecutorFactory struct {
	getter executorFactoryRepository
}

func NewDbExecutorFactory(getter executorFactoryRepository) DbExecutorFactory {
	return DbExecutorFactory{getter: getter}
}

func (factory DbExecutorFactory) NewExecutor() repositories.Executor {
	return factory.getter.GetExecutor()
}

func (factory DbExecutorFactory) Transaction(
	ctx context.Context,
	fn func(tx repositories.Transaction) error,
) error {
	return factory.getter.Transaction(ctx, fn)
}
