package usecases

import (
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
)

// Usecases is the dependency container handed to the API layer. Each
// NewXxxUsecase method assembles one usecase over the shared repository and
// executor factory.
type Usecases struct {
	Repository      *repositories.QaDbRepository
	ExecutorFactory executor_factory.DbExecutorFactory
	TaskQueue       repositories.TaskQueueRepository
}

func NewUsecases(
	executorGetter repositories.ExecutorGetter,
	taskQueue repositories.TaskQueueRepository,
) Usecases {
	return Usecases{
		Repository:      repositories.NewQaDbRepository(),
		ExecutorFactory: executor_factory.NewDbExecutorFactory(executorGetter),
		TaskQueue:       taskQueue,
	}
}

func (u Usecases) NewTestListInstanceUsecase() TestListInstanceUsecase {
	return TestListInstanceUsecase{
		executorFactory:    u.ExecutorFactory,
		transactionFactory: u.ExecutorFactory,
		repository:         u.Repository,
		taskQueue:          u.TaskQueue,
	}
}

func (u Usecases) NewTestDefinitionUsecase() TestDefinitionUsecase {
	return TestDefinitionUsecase{
		executorFactory:    u.ExecutorFactory,
		transactionFactory: u.ExecutorFactory,
		repository:         u.Repository,
	}
}

func (u Usecases) NewTestListUsecase() TestListUsecase {
	return TestListUsecase{
		executorFactory:    u.ExecutorFactory,
		transactionFactory: u.ExecutorFactory,
		repository:         u.Repository,
	}
}

func (u Usecases) NewUnitUsecase() UnitUsecase {
	return UnitUsecase{
		executorFactory:    u.ExecutorFactory,
		transactionFactory: u.ExecutorFactory,
		repository:         u.Repository,
	}
}

func (u Usecases) NewStatusUsecase() StatusUsecase {
	return StatusUsecase{
		executorFactory:    u.ExecutorFactory,
		transactionFactory: u.ExecutorFactory,
		repository:         u.Repository,
	}
}

func (u Usecases) NewCompositeCalculationUsecase() CompositeCalculationUsecase {
	return CompositeCalculationUsecase{
		executorFactory: u.ExecutorFactory,
		repository:      u.Repository,
	}
}
