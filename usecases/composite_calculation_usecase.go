package usecases

import (
	"context"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
	"github.com/qatrackplus/qatrack-backend/usecases/perform_qc"
)

type compositeCalculationRepository interface {
	GetTestListById(ctx context.Context, exec repositories.Executor, testListId string) (models.TestListDefinition, error)
}

// CompositeCalculationUsecase evaluates submissions without persisting
// anything, for live recalculation while a user fills a form.
type CompositeCalculationUsecase struct {
	executorFactory executor_factory.ExecutorFactory
	repository      compositeCalculationRepository
}

// CalculateComposites runs normalization and composite resolution over a
// possibly partial submission. Tests left out are treated as skipped, so
// composites depending on them report their error instead of failing the whole
// request.
func (uc CompositeCalculationUsecase) CalculateComposites(
	ctx context.Context,
	testListId string,
	submission models.Submission,
) (models.ResolveOutput, error) {
	testList, err := uc.repository.GetTestListById(ctx, uc.executorFactory.NewExecutor(), testListId)
	if err != nil {
		return models.ResolveOutput{}, err
	}

	entries := make(map[string]any, len(submission.Tests))
	for slug, entry := range submission.Tests {
		entries[slug] = entry
	}
	for _, test := range testList.FlattenedTests() {
		if test.IsDerived() || test.Type == models.TestTypeConstant {
			continue
		}
		if _, ok := entries[test.Slug]; !ok {
			entries[test.Slug] = map[string]any{"skipped": true}
		}
	}
	submission.Tests = entries

	normalized, err := perform_qc.NormalizeSubmission(testList, submission)
	if err != nil {
		return models.ResolveOutput{}, err
	}
	return perform_qc.ResolveComposites(testList, normalized), nil
}
