package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories"
)

type fakeExecutorFactory struct{}

func (fakeExecutorFactory) NewExecutor() repositories.Executor { return nil }

type fakeTransactionFactory struct{}

func (fakeTransactionFactory) Transaction(
	ctx context.Context,
	fn func(tx repositories.Transaction) error,
) error {
	return fn(nil)
}

type fakeTaskQueue struct {
	enqueued []string
}

func (q *fakeTaskQueue) EnqueueQcCompletedTask(
	ctx context.Context,
	tx repositories.Transaction,
	testListInstanceId string,
) error {
	q.enqueued = append(q.enqueued, testListInstanceId)
	return nil
}

type fakeQcRepository struct {
	testLists   map[string]models.TestListDefinition
	collections map[string]models.UnitTestCollection
	infos       map[string]*models.UnitTestInfo
	statuses    []models.TestInstanceStatus
	rules       models.AutoReviewRuleSet
	instances   map[string]models.TestListInstance
	children    map[string][]models.TestInstance
	attachments []models.Attachment
}

func infoKey(unitId, testId string) string { return unitId + "/" + testId }

func (r *fakeQcRepository) GetTestListById(
	ctx context.Context, exec repositories.Executor, testListId string,
) (models.TestListDefinition, error) {
	testList, ok := r.testLists[testListId]
	if !ok {
		return models.TestListDefinition{}, models.ErrTestListNotFound
	}
	return testList, nil
}

func (r *fakeQcRepository) GetUnitTestCollectionById(
	ctx context.Context, exec repositories.Executor, collectionId string,
) (models.UnitTestCollection, error) {
	collection, ok := r.collections[collectionId]
	if !ok {
		return models.UnitTestCollection{}, models.ErrCollectionNotFound
	}
	return collection, nil
}

func (r *fakeQcRepository) UpdateUnitTestCollectionDueDate(
	ctx context.Context, exec repositories.Executor, collectionId string, dueDate *time.Time,
) error {
	collection := r.collections[collectionId]
	collection.DueDate = dueDate
	r.collections[collectionId] = collection
	return nil
}

func (r *fakeQcRepository) GetUnitTestInfo(
	ctx context.Context, exec repositories.Executor, unitId, testId string,
) (*models.UnitTestInfo, error) {
	return r.infos[infoKey(unitId, testId)], nil
}

func (r *fakeQcRepository) ListTestInstanceStatuses(
	ctx context.Context, exec repositories.Executor,
) ([]models.TestInstanceStatus, error) {
	return r.statuses, nil
}

func (r *fakeQcRepository) GetDefaultTestInstanceStatus(
	ctx context.Context, exec repositories.Executor,
) (models.TestInstanceStatus, error) {
	for _, status := range r.statuses {
		if status.IsDefault {
			return status, nil
		}
	}
	return models.TestInstanceStatus{}, models.ErrNoDefaultStatus
}

func (r *fakeQcRepository) ListAutoReviewRules(
	ctx context.Context, exec repositories.Executor,
) (models.AutoReviewRuleSet, error) {
	return r.rules, nil
}

func (r *fakeQcRepository) CreateTestListInstance(
	ctx context.Context, exec repositories.Executor, instance models.TestListInstance,
) error {
	r.instances[instance.Id] = instance
	return nil
}

func (r *fakeQcRepository) UpdateTestListInstance(
	ctx context.Context, exec repositories.Executor, instance models.TestListInstance,
) error {
	r.instances[instance.Id] = instance
	return nil
}

func (r *fakeQcRepository) GetTestListInstanceById(
	ctx context.Context, exec repositories.Executor, instanceId string,
) (models.TestListInstance, error) {
	instance, ok := r.instances[instanceId]
	if !ok {
		return models.TestListInstance{}, models.NotFoundError
	}
	return instance, nil
}

func (r *fakeQcRepository) ListTestListInstances(
	ctx context.Context, exec repositories.Executor, collectionId *string,
) ([]models.TestListInstance, error) {
	var out []models.TestListInstance
	for _, instance := range r.instances {
		if collectionId == nil || instance.UnitTestCollectionId == *collectionId {
			out = append(out, instance)
		}
	}
	return out, nil
}

func (r *fakeQcRepository) BatchInsertTestInstances(
	ctx context.Context, exec repositories.Executor, instances []models.TestInstance,
) error {
	for _, instance := range instances {
		r.children[instance.TestListInstanceId] = append(r.children[instance.TestListInstanceId], instance)
	}
	return nil
}

func (r *fakeQcRepository) ListTestInstances(
	ctx context.Context, exec repositories.Executor, testListInstanceId string,
) ([]models.TestInstance, error) {
	children := make([]models.TestInstance, len(r.children[testListInstanceId]))
	copy(children, r.children[testListInstanceId])
	return children, nil
}

func (r *fakeQcRepository) UpdateTestInstanceResult(
	ctx context.Context, exec repositories.Executor, instance models.TestInstance,
) error {
	children := r.children[instance.TestListInstanceId]
	for i := range children {
		if children[i].Id == instance.Id {
			children[i] = instance
			return nil
		}
	}
	return models.NotFoundError
}

func (r *fakeQcRepository) UpdateTestInstanceStatus(
	ctx context.Context, exec repositories.Executor, testInstanceId, statusId string,
) error {
	for instanceId := range r.children {
		for i := range r.children[instanceId] {
			if r.children[instanceId][i].Id == testInstanceId {
				r.children[instanceId][i].StatusId = statusId
				return nil
			}
		}
	}
	return models.NotFoundError
}

func (r *fakeQcRepository) SetReviewState(
	ctx context.Context, exec repositories.Executor,
	instanceId string, allReviewed bool, reviewedBy *string, reviewedAt *time.Time,
) error {
	instance := r.instances[instanceId]
	instance.AllReviewed = allReviewed
	instance.ReviewedBy = reviewedBy
	instance.ReviewedAt = reviewedAt
	r.instances[instanceId] = instance
	return nil
}

func (r *fakeQcRepository) BatchInsertAttachments(
	ctx context.Context, exec repositories.Executor, attachments []models.Attachment,
) error {
	r.attachments = append(r.attachments, attachments...)
	return nil
}

func (r *fakeQcRepository) ListAttachmentsForTestListInstance(
	ctx context.Context, exec repositories.Executor, testListInstanceId string,
) ([]models.Attachment, error) {
	childIds := make(map[string]bool)
	for _, child := range r.children[testListInstanceId] {
		childIds[child.Id] = true
	}
	var out []models.Attachment
	for _, attachment := range r.attachments {
		switch {
		case attachment.TestListInstanceId != nil && *attachment.TestListInstanceId == testListInstanceId:
			out = append(out, attachment)
		case attachment.TestInstanceId != nil && childIds[*attachment.TestInstanceId]:
			out = append(out, attachment)
		}
	}
	return out, nil
}

func float64Ptr(v float64) *float64 { return &v }

func newQcFixture() *fakeQcRepository {
	temp1 := models.TestDefinition{Id: "t1", Name: "Temp 1", Slug: "temp_1", Type: models.TestTypeSimple}
	temp2 := models.TestDefinition{Id: "t2", Name: "Temp 2", Slug: "temp_2", Type: models.TestTypeSimple}
	avg := models.TestDefinition{
		Id: "t3", Name: "Average temp", Slug: "avg_temp",
		Type: models.TestTypeComposite, Procedure: "result = (temp_1 + temp_2) / 2",
	}

	testList := models.TestListDefinition{
		Id:   "tl1",
		Name: "Daily QC",
		Slug: "daily_qc",
		Items: []models.TestListItem{
			{Order: 0, Test: &temp1},
			{Order: 1, Test: &temp2},
			{Order: 2, Test: &avg},
		},
	}

	frequency := 7
	return &fakeQcRepository{
		testLists: map[string]models.TestListDefinition{"tl1": testList},
		collections: map[string]models.UnitTestCollection{
			"utc1": {Id: "utc1", UnitId: "unit1", TestListId: "tl1", Name: "Daily QC on linac 1", FrequencyDays: &frequency},
		},
		infos: map[string]*models.UnitTestInfo{
			infoKey("unit1", "t1"): {
				UnitId: "unit1", TestId: "t1",
				Reference: &models.Reference{Type: models.ReferenceValue, Value: 1.0},
				Tolerance: &models.Tolerance{
					Type:   models.ToleranceAbsolute,
					TolLow: float64Ptr(-0.1), TolHigh: float64Ptr(0.1),
					ActLow: float64Ptr(-0.2), ActHigh: float64Ptr(0.2),
				},
			},
		},
		statuses: []models.TestInstanceStatus{
			{Id: "unreviewed", Name: "Unreviewed", Slug: "unreviewed", IsDefault: true, RequiresReview: true},
			{Id: "approved", Name: "Approved", Slug: "approved", RequiresReview: false},
		},
		instances: map[string]models.TestListInstance{},
		children:  map[string][]models.TestInstance{},
	}
}

func newQcUsecase(repo *fakeQcRepository, queue *fakeTaskQueue) TestListInstanceUsecase {
	return TestListInstanceUsecase{
		executorFactory:    fakeExecutorFactory{},
		transactionFactory: fakeTransactionFactory{},
		repository:         repo,
		taskQueue:          queue,
	}
}

func numberEntry(value float64) map[string]any {
	return map[string]any{"value": value}
}

func newSubmission() models.Submission {
	started := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	completed := started.Add(30 * time.Minute)
	return models.Submission{
		UnitTestCollectionId: "utc1",
		WorkStarted:          started,
		WorkCompleted:        &completed,
		UserKey:              "physicist",
		Tests: map[string]any{
			"temp_1": numberEntry(1.05),
			"temp_2": numberEntry(2.95),
		},
	}
}

func TestPerformQCCreatesAggregate(t *testing.T) {
	repo := newQcFixture()
	queue := &fakeTaskQueue{}
	uc := newQcUsecase(repo, queue)

	detail, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	assert.Len(t, repo.instances, 1)
	require.Len(t, detail.Tests, 3)
	assert.Equal(t, []string{"temp_1", "temp_2", "avg_temp"},
		[]string{detail.Tests[0].TestSlug, detail.Tests[1].TestSlug, detail.Tests[2].TestSlug})

	require.NotNil(t, detail.Tests[2].Value)
	assert.InDelta(t, 2.0, *detail.Tests[2].Value, 1e-9)

	// temp_1 deviates 0.05 from a reference of 1.0, inside the 0.1 tolerance band
	assert.Equal(t, models.PassFailOK, detail.Tests[0].PassFail)
	require.NotNil(t, detail.Tests[0].Reference)
	assert.Equal(t, 1.0, detail.Tests[0].Reference.Value)
	// the two remaining tests have no reference configured
	assert.Equal(t, models.PassFailNoTolerance, detail.Tests[1].PassFail)
	assert.Equal(t, models.PassFailNoTolerance, detail.Tests[2].PassFail)

	for _, child := range detail.Tests {
		assert.Equal(t, "unreviewed", child.StatusId)
		assert.Equal(t, "physicist", child.CreatedBy)
	}
	assert.False(t, detail.Instance.AllReviewed)

	collection := repo.collections["utc1"]
	require.NotNil(t, collection.DueDate)
	assert.Equal(t, newSubmission().WorkCompleted.AddDate(0, 0, 7), *collection.DueDate)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, detail.Instance.Id, queue.enqueued[0])
}

func TestPerformQCAutoReviewRules(t *testing.T) {
	repo := newQcFixture()
	repo.rules = models.AutoReviewRuleSet{
		{Id: "r1", PassFail: models.PassFailOK, StatusId: "approved"},
		{Id: "r2", PassFail: models.PassFailNoTolerance, StatusId: "approved"},
	}
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	detail, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	for _, child := range detail.Tests {
		assert.Equal(t, "approved", child.StatusId)
	}
	assert.True(t, detail.Instance.AllReviewed)
}

func TestPerformQCExplicitStatus(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	submission := newSubmission()
	statusId := "approved"
	submission.StatusId = &statusId

	detail, err := uc.PerformQC(context.Background(), submission)
	require.NoError(t, err)

	for _, child := range detail.Tests {
		assert.Equal(t, "approved", child.StatusId)
	}
	assert.True(t, detail.Instance.AllReviewed)
}

func TestPerformQCUnknownStatus(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	submission := newSubmission()
	statusId := "does-not-exist"
	submission.StatusId = &statusId

	_, err := uc.PerformQC(context.Background(), submission)
	assert.ErrorIs(t, err, models.ErrStatusNotFound)
	assert.Empty(t, repo.instances)
}

func TestPerformQCProcedureErrorBlocksPersistence(t *testing.T) {
	repo := newQcFixture()
	testList := repo.testLists["tl1"]
	broken := models.TestDefinition{
		Id: "t4", Slug: "broken", Type: models.TestTypeComposite,
		Procedure: "result = temp_1 / (temp_1 - temp_1)",
	}
	testList.Items = append(testList.Items, models.TestListItem{Order: 3, Test: &broken})
	repo.testLists["tl1"] = testList
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	_, err := uc.PerformQC(context.Background(), newSubmission())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.BadParameterError)
	assert.Contains(t, err.Error(), "broken: Invalid Test Procedure: broken")
	assert.Empty(t, repo.instances)
	assert.Empty(t, repo.children)
}

func TestPerformQCCyclicDependencyBlocksPersistence(t *testing.T) {
	repo := newQcFixture()
	cyclic1 := models.TestDefinition{Id: "c1", Slug: "cyclic1", Type: models.TestTypeComposite, Procedure: "result = cyclic2 + 1"}
	cyclic2 := models.TestDefinition{Id: "c2", Slug: "cyclic2", Type: models.TestTypeComposite, Procedure: "result = cyclic1 + 1"}
	testList := repo.testLists["tl1"]
	testList.Items = append(testList.Items,
		models.TestListItem{Order: 3, Test: &cyclic1},
		models.TestListItem{Order: 4, Test: &cyclic2})
	repo.testLists["tl1"] = testList
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	_, err := uc.PerformQC(context.Background(), newSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cyclic test dependency")
	assert.Empty(t, repo.instances)
}

func TestPerformQCInProgressSkipsScheduling(t *testing.T) {
	repo := newQcFixture()
	queue := &fakeTaskQueue{}
	uc := newQcUsecase(repo, queue)

	submission := newSubmission()
	submission.InProgress = true

	detail, err := uc.PerformQC(context.Background(), submission)
	require.NoError(t, err)

	assert.True(t, detail.Instance.InProgress)
	assert.Nil(t, repo.collections["utc1"].DueDate)
	assert.Empty(t, queue.enqueued)
}

func TestPerformQCSubmissionAttachments(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	submission := newSubmission()
	submission.Attachments = []models.AttachmentPayload{
		{Filename: "report.pdf", Data: []byte("pdf bytes")},
	}

	detail, err := uc.PerformQC(context.Background(), submission)
	require.NoError(t, err)

	require.Len(t, detail.Attachments, 1)
	assert.Equal(t, "report.pdf", detail.Attachments[0].Filename)
	require.NotNil(t, detail.Attachments[0].TestListInstanceId)
	assert.Equal(t, detail.Instance.Id, *detail.Attachments[0].TestListInstanceId)
}

func TestUpdateQCRewritesChildrenAndResetsReview(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	created, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	reviewer := "chief"
	_, err = uc.Review(context.Background(), models.ReviewInput{
		TestListInstanceId: created.Instance.Id,
		ReviewerKey:        reviewer,
		StatusByTestInstanceId: map[string]string{
			created.Tests[0].Id: "approved",
			created.Tests[1].Id: "approved",
			created.Tests[2].Id: "approved",
		},
	})
	require.NoError(t, err)

	update := newSubmission()
	update.Tests["temp_1"] = numberEntry(2.0)
	update.Tests["temp_2"] = numberEntry(4.0)
	update.UserKey = "other_physicist"

	detail, err := uc.UpdateQC(context.Background(), created.Instance.Id, update)
	require.NoError(t, err)

	require.Len(t, detail.Tests, 3)
	for i := range detail.Tests {
		assert.Equal(t, created.Tests[i].Id, detail.Tests[i].Id)
	}
	require.NotNil(t, detail.Tests[2].Value)
	assert.InDelta(t, 3.0, *detail.Tests[2].Value, 1e-9)

	// temp_1 now deviates 1.0 from the reference, past the 0.2 action level
	assert.Equal(t, models.PassFailAction, detail.Tests[0].PassFail)

	assert.Equal(t, "other_physicist", detail.Instance.ModifiedBy)
	assert.Nil(t, detail.Instance.ReviewedBy)
	assert.False(t, detail.Instance.AllReviewed)
	assert.Equal(t, "unreviewed", detail.Tests[0].StatusId)
}

func TestUpdateQCStaleChildCountsTowardRollup(t *testing.T) {
	repo := newQcFixture()
	repo.rules = models.AutoReviewRuleSet{
		{Id: "r1", PassFail: models.PassFailOK, StatusId: "approved"},
		{Id: "r2", PassFail: models.PassFailNoTolerance, StatusId: "approved"},
	}
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	created, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)
	assert.True(t, created.Instance.AllReviewed)

	// avg_temp is removed from the list definition; its child row stays behind
	testList := repo.testLists["tl1"]
	testList.Items = testList.Items[:2]
	repo.testLists["tl1"] = testList
	require.NoError(t, repo.UpdateTestInstanceStatus(
		context.Background(), nil, created.Tests[2].Id, "unreviewed"))

	detail, err := uc.UpdateQC(context.Background(), created.Instance.Id, newSubmission())
	require.NoError(t, err)

	require.Len(t, detail.Tests, 3)
	assert.Equal(t, "unreviewed", detail.Tests[2].StatusId)
	assert.False(t, detail.Instance.AllReviewed)
}

func TestReviewUpdatesStatusesAndRollup(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	created, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)
	assert.False(t, created.Instance.AllReviewed)

	statusByChild := make(map[string]string)
	for _, child := range created.Tests {
		statusByChild[child.Id] = "approved"
	}

	detail, err := uc.Review(context.Background(), models.ReviewInput{
		TestListInstanceId:     created.Instance.Id,
		ReviewerKey:            "chief",
		StatusByTestInstanceId: statusByChild,
	})
	require.NoError(t, err)

	for _, child := range detail.Tests {
		assert.Equal(t, "approved", child.StatusId)
	}
	assert.True(t, detail.Instance.AllReviewed)
	require.NotNil(t, detail.Instance.ReviewedBy)
	assert.Equal(t, "chief", *detail.Instance.ReviewedBy)
	require.NotNil(t, detail.Instance.ReviewedAt)
}

func TestReviewUnknownStatusRejected(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	created, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	_, err = uc.Review(context.Background(), models.ReviewInput{
		TestListInstanceId: created.Instance.Id,
		ReviewerKey:        "chief",
		StatusByTestInstanceId: map[string]string{
			created.Tests[0].Id: "bogus",
		},
	})
	assert.ErrorIs(t, err, models.ErrStatusNotFound)
}

func TestPartialReviewKeepsRollupFalse(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	created, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	detail, err := uc.Review(context.Background(), models.ReviewInput{
		TestListInstanceId: created.Instance.Id,
		ReviewerKey:        "chief",
		StatusByTestInstanceId: map[string]string{
			created.Tests[0].Id: "approved",
		},
	})
	require.NoError(t, err)
	assert.False(t, detail.Instance.AllReviewed)
}

func TestListTestListInstancesFiltersByCollection(t *testing.T) {
	repo := newQcFixture()
	uc := newQcUsecase(repo, &fakeTaskQueue{})

	_, err := uc.PerformQC(context.Background(), newSubmission())
	require.NoError(t, err)

	collectionId := "utc1"
	instances, err := uc.ListTestListInstances(context.Background(), &collectionId)
	require.NoError(t, err)
	assert.Len(t, instances, 1)

	other := "utc2"
	instances, err = uc.ListTestListInstances(context.Background(), &other)
	require.NoError(t, err)
	assert.Empty(t, instances)
}
