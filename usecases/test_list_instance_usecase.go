package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases/executor_factory"
	"github.com/qatrackplus/qatrack-backend/usecases/perform_qc"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type testListInstanceRepository interface {
	GetTestListById(ctx context.Context, exec repositories.Executor, testListId string) (models.TestListDefinition, error)
	GetUnitTestCollectionById(ctx context.Context, exec repositories.Executor, collectionId string) (models.UnitTestCollection, error)
	UpdateUnitTestCollectionDueDate(ctx context.Context, exec repositories.Executor, collectionId string, dueDate *time.Time) error
	GetUnitTestInfo(ctx context.Context, exec repositories.Executor, unitId, testId string) (*models.UnitTestInfo, error)
	ListTestInstanceStatuses(ctx context.Context, exec repositories.Executor) ([]models.TestInstanceStatus, error)
	GetDefaultTestInstanceStatus(ctx context.Context, exec repositories.Executor) (models.TestInstanceStatus, error)
	ListAutoReviewRules(ctx context.Context, exec repositories.Executor) (models.AutoReviewRuleSet, error)
	CreateTestListInstance(ctx context.Context, exec repositories.Executor, instance models.TestListInstance) error
	UpdateTestListInstance(ctx context.Context, exec repositories.Executor, instance models.TestListInstance) error
	GetTestListInstanceById(ctx context.Context, exec repositories.Executor, instanceId string) (models.TestListInstance, error)
	ListTestListInstances(ctx context.Context, exec repositories.Executor, collectionId *string) ([]models.TestListInstance, error)
	BatchInsertTestInstances(ctx context.Context, exec repositories.Executor, instances []models.TestInstance) error
	ListTestInstances(ctx context.Context, exec repositories.Executor, testListInstanceId string) ([]models.TestInstance, error)
	UpdateTestInstanceResult(ctx context.Context, exec repositories.Executor, instance models.TestInstance) error
	UpdateTestInstanceStatus(ctx context.Context, exec repositories.Executor, testInstanceId, statusId string) error
	SetReviewState(ctx context.Context, exec repositories.Executor, instanceId string, allReviewed bool, reviewedBy *string, reviewedAt *time.Time) error
	BatchInsertAttachments(ctx context.Context, exec repositories.Executor, attachments []models.Attachment) error
	ListAttachmentsForTestListInstance(ctx context.Context, exec repositories.Executor, testListInstanceId string) ([]models.Attachment, error)
}

// TestListInstanceUsecase drives the perform-QC pipeline end to end:
// normalization, composite resolution, and the transactional build of the
// aggregate with pass/fail and review classification.
type TestListInstanceUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	repository         testListInstanceRepository
	taskQueue          repositories.TaskQueueRepository
}

// PerformQC creates a new test list instance from a raw submission. Validation
// and calculation errors are surfaced before anything is written; the write
// itself is a single transaction.
func (uc TestListInstanceUsecase) PerformQC(
	ctx context.Context,
	submission models.Submission,
) (models.TestListInstanceDetail, error) {
	exec := uc.executorFactory.NewExecutor()

	collection, err := uc.repository.GetUnitTestCollectionById(ctx, exec, submission.UnitTestCollectionId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	testList, err := uc.repository.GetTestListById(ctx, exec, collection.TestListId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	resolved, err := uc.resolveSubmission(testList, submission)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	plan, err := uc.buildStatusPlan(ctx, exec, submission.StatusId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	instanceId := uuid.NewString()
	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		tests := testList.FlattenedTests()

		children, err := uc.buildChildren(ctx, tx, collection, tests, resolved, plan, instanceId, submission.UserKey)
		if err != nil {
			return err
		}

		instance := models.TestListInstance{
			Id:                   instanceId,
			UnitTestCollectionId: collection.Id,
			TestListId:           testList.Id,
			WorkStarted:          submission.WorkStarted,
			WorkCompleted:        submission.WorkCompleted,
			InProgress:           submission.InProgress,
			Comment:              submission.Comment,
			AllReviewed:          allReviewed(children, plan.statusesById),
			CreatedBy:            submission.UserKey,
			ModifiedBy:           submission.UserKey,
		}
		if err := uc.repository.CreateTestListInstance(ctx, tx, instance); err != nil {
			return err
		}
		if err := uc.repository.BatchInsertTestInstances(ctx, tx, children); err != nil {
			return err
		}

		attachments := buildAttachments(instanceId, children, resolved, submission.Attachments)
		if err := uc.repository.BatchInsertAttachments(ctx, tx, attachments); err != nil {
			return err
		}

		if !submission.InProgress && submission.WorkCompleted != nil {
			due := collection.NextDueDate(*submission.WorkCompleted)
			if err := uc.repository.UpdateUnitTestCollectionDueDate(ctx, tx, collection.Id, due); err != nil {
				return err
			}

			// completion notification is best-effort, a failure to enqueue
			// must not fail the submission
			if uc.taskQueue != nil {
				if err := uc.taskQueue.EnqueueQcCompletedTask(ctx, tx, instanceId); err != nil {
					utils.LoggerFromContext(ctx).WarnContext(ctx,
						"failed to enqueue qc completed task", "error", err.Error())
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	return uc.GetTestListInstance(ctx, instanceId)
}

// UpdateQC re-runs the pipeline over an existing instance, rewriting its child
// rows in place. Review state is reset first: any edit requires re-review
// unless the applied statuses say otherwise.
func (uc TestListInstanceUsecase) UpdateQC(
	ctx context.Context,
	instanceId string,
	submission models.Submission,
) (models.TestListInstanceDetail, error) {
	exec := uc.executorFactory.NewExecutor()

	existing, err := uc.repository.GetTestListInstanceById(ctx, exec, instanceId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	collection, err := uc.repository.GetUnitTestCollectionById(ctx, exec, existing.UnitTestCollectionId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	testList, err := uc.repository.GetTestListById(ctx, exec, existing.TestListId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	resolved, err := uc.resolveSubmission(testList, submission)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	plan, err := uc.buildStatusPlan(ctx, exec, submission.StatusId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		children, err := uc.repository.ListTestInstances(ctx, tx, instanceId)
		if err != nil {
			return err
		}

		rollup := make([]models.TestInstance, 0, len(children))
		for _, child := range children {
			result, ok := resolved[child.TestSlug]
			if !ok {
				// a child whose test has since left the list definition keeps
				// its row and status, and still counts toward the rollup
				rollup = append(rollup, child)
				continue
			}
			info, err := uc.repository.GetUnitTestInfo(ctx, tx, collection.UnitId, child.TestId)
			if err != nil {
				return err
			}
			child = applyResult(child, result, info, plan)
			if err := uc.repository.UpdateTestInstanceResult(ctx, tx, child); err != nil {
				return err
			}
			rollup = append(rollup, child)
		}

		instance := existing
		instance.WorkStarted = submission.WorkStarted
		instance.WorkCompleted = submission.WorkCompleted
		instance.InProgress = submission.InProgress
		instance.Comment = submission.Comment
		instance.ModifiedBy = submission.UserKey
		// reset, then recompute from the statuses just applied
		instance.ReviewedBy = nil
		instance.ReviewedAt = nil
		instance.AllReviewed = allReviewed(rollup, plan.statusesById)

		return uc.repository.UpdateTestListInstance(ctx, tx, instance)
	})
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	return uc.GetTestListInstance(ctx, instanceId)
}

// Review applies reviewer-chosen statuses to child instances and recomputes
// the aggregate rollup.
func (uc TestListInstanceUsecase) Review(
	ctx context.Context,
	input models.ReviewInput,
) (models.TestListInstanceDetail, error) {
	exec := uc.executorFactory.NewExecutor()

	statuses, err := uc.repository.ListTestInstanceStatuses(ctx, exec)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	statusesById := make(map[string]models.TestInstanceStatus, len(statuses))
	for _, status := range statuses {
		statusesById[status.Id] = status
	}

	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		children, err := uc.repository.ListTestInstances(ctx, tx, input.TestListInstanceId)
		if err != nil {
			return err
		}

		reviewed := true
		for i, child := range children {
			if statusId, ok := input.StatusByTestInstanceId[child.Id]; ok {
				if _, known := statusesById[statusId]; !known {
					return fmt.Errorf("status '%s': %w", statusId, models.ErrStatusNotFound)
				}
				if err := uc.repository.UpdateTestInstanceStatus(ctx, tx, child.Id, statusId); err != nil {
					return err
				}
				children[i].StatusId = statusId
			}
			if statusesById[children[i].StatusId].RequiresReview {
				reviewed = false
			}
		}

		now := time.Now()
		return uc.repository.SetReviewState(ctx, tx,
			input.TestListInstanceId, reviewed, &input.ReviewerKey, &now)
	})
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	return uc.GetTestListInstance(ctx, input.TestListInstanceId)
}

func (uc TestListInstanceUsecase) GetTestListInstance(
	ctx context.Context,
	instanceId string,
) (models.TestListInstanceDetail, error) {
	exec := uc.executorFactory.NewExecutor()

	instance, err := uc.repository.GetTestListInstanceById(ctx, exec, instanceId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	children, err := uc.repository.ListTestInstances(ctx, exec, instanceId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	attachments, err := uc.repository.ListAttachmentsForTestListInstance(ctx, exec, instanceId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}
	testList, err := uc.repository.GetTestListById(ctx, exec, instance.TestListId)
	if err != nil {
		return models.TestListInstanceDetail{}, err
	}

	testsById := make(map[string]models.TestDefinition)
	for _, test := range testList.FlattenedTests() {
		testsById[test.Id] = test
	}

	return models.TestListInstanceDetail{
		Instance:    instance,
		Tests:       children,
		TestsById:   testsById,
		Attachments: attachments,
	}, nil
}

func (uc TestListInstanceUsecase) ListTestListInstances(
	ctx context.Context,
	collectionId *string,
) ([]models.TestListInstance, error) {
	return uc.repository.ListTestListInstances(ctx, uc.executorFactory.NewExecutor(), collectionId)
}

// resolveSubmission runs normalization and composite resolution, turning any
// remaining per-test error into a batch validation error so nothing gets
// persisted with an unresolved test.
func (uc TestListInstanceUsecase) resolveSubmission(
	testList models.TestListDefinition,
	submission models.Submission,
) (map[string]models.ResolvedResult, error) {
	normalized, err := perform_qc.NormalizeSubmission(testList, submission)
	if err != nil {
		return nil, err
	}

	output := perform_qc.ResolveComposites(testList, normalized)
	if !output.Success {
		return nil, models.NewValidationError(output.Errors...)
	}

	var messages []string
	for _, test := range testList.FlattenedTests() {
		if result, ok := output.Results[test.Slug]; ok && result.Error != "" {
			messages = append(messages, fmt.Sprintf("%s: %s", test.Slug, result.Error))
		}
	}
	if len(messages) > 0 {
		return nil, models.NewValidationError(messages...)
	}
	return output.Results, nil
}

// statusPlan captures how statuses are assigned to the children of one
// submission: an explicitly chosen status applies everywhere, otherwise the
// default status possibly overridden per pass/fail outcome by auto-review
// rules.
type statusPlan struct {
	explicit     *models.TestInstanceStatus
	fallback     models.TestInstanceStatus
	rules        models.AutoReviewRuleSet
	statusesById map[string]models.TestInstanceStatus
}

func (p statusPlan) statusFor(passFail models.PassFail) string {
	if p.explicit != nil {
		return p.explicit.Id
	}
	if statusId, ok := p.rules.StatusFor(passFail); ok {
		return statusId
	}
	return p.fallback.Id
}

func (uc TestListInstanceUsecase) buildStatusPlan(
	ctx context.Context,
	exec repositories.Executor,
	chosenStatusId *string,
) (statusPlan, error) {
	statuses, err := uc.repository.ListTestInstanceStatuses(ctx, exec)
	if err != nil {
		return statusPlan{}, err
	}

	plan := statusPlan{statusesById: make(map[string]models.TestInstanceStatus, len(statuses))}
	for _, status := range statuses {
		plan.statusesById[status.Id] = status
	}

	if chosenStatusId != nil {
		status, ok := plan.statusesById[*chosenStatusId]
		if !ok {
			return statusPlan{}, fmt.Errorf("status '%s': %w", *chosenStatusId, models.ErrStatusNotFound)
		}
		plan.explicit = &status
		return plan, nil
	}

	plan.fallback, err = uc.repository.GetDefaultTestInstanceStatus(ctx, exec)
	if err != nil {
		return statusPlan{}, err
	}
	plan.rules, err = uc.repository.ListAutoReviewRules(ctx, exec)
	if err != nil {
		return statusPlan{}, err
	}
	return plan, nil
}

func (uc TestListInstanceUsecase) buildChildren(
	ctx context.Context,
	exec repositories.Executor,
	collection models.UnitTestCollection,
	tests []models.TestDefinition,
	resolved map[string]models.ResolvedResult,
	plan statusPlan,
	instanceId string,
	userKey string,
) ([]models.TestInstance, error) {
	children := make([]models.TestInstance, 0, len(tests))
	for order, test := range tests {
		result := resolved[test.Slug]

		info, err := uc.repository.GetUnitTestInfo(ctx, exec, collection.UnitId, test.Id)
		if err != nil {
			return nil, err
		}

		child := models.TestInstance{
			Id:                 uuid.NewString(),
			TestListInstanceId: instanceId,
			TestId:             test.Id,
			TestSlug:           test.Slug,
			Order:              order,
			CreatedBy:          userKey,
		}
		child = applyResult(child, result, info, plan)
		children = append(children, child)
	}
	return children, nil
}

// applyResult fills a child row from the resolved value, snapshots the active
// reference/tolerance, and classifies it.
func applyResult(
	child models.TestInstance,
	result models.ResolvedResult,
	info *models.UnitTestInfo,
	plan statusPlan,
) models.TestInstance {
	child.Value = result.Value
	child.StringValue = result.StringValue
	child.DateValue = result.Date
	child.DatetimeValue = result.Datetime
	child.Skipped = result.Skipped
	child.Comment = result.Comment

	child.Reference = nil
	child.Tolerance = nil
	if info != nil {
		child.Reference = info.Reference
		child.Tolerance = info.Tolerance
	}

	var value float64
	if child.Value != nil {
		value = *child.Value
	}
	child.PassFail = models.ClassifyPassFail(value, child.Skipped, child.Reference, child.Tolerance)
	child.StatusId = plan.statusFor(child.PassFail)
	return child
}

func allReviewed(children []models.TestInstance, statusesById map[string]models.TestInstanceStatus) bool {
	for _, child := range children {
		if statusesById[child.StatusId].RequiresReview {
			return false
		}
	}
	return len(children) > 0
}

// buildAttachments links resolution-produced attachments to their owning test
// instance by slug, and submission-level uploads to the aggregate itself.
func buildAttachments(
	instanceId string,
	children []models.TestInstance,
	resolved map[string]models.ResolvedResult,
	submissionAttachments []models.AttachmentPayload,
) []models.Attachment {
	var attachments []models.Attachment

	for _, payload := range submissionAttachments {
		id := instanceId
		attachments = append(attachments, models.Attachment{
			Id:                 uuid.NewString(),
			TestListInstanceId: &id,
			Filename:           payload.Filename,
			Data:               payload.Data,
			SystemGenerated:    payload.SystemGenerated,
		})
	}

	for _, child := range children {
		result, ok := resolved[child.TestSlug]
		if !ok {
			continue
		}
		for _, payload := range result.Attachments {
			childId := child.Id
			attachments = append(attachments, models.Attachment{
				Id:              uuid.NewString(),
				TestInstanceId:  &childId,
				Filename:        payload.Filename,
				Data:            payload.Data,
				SystemGenerated: payload.SystemGenerated,
			})
		}
	}
	return attachments
}
