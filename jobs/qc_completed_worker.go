package jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type testListInstanceReader interface {
	GetTestListInstance(ctx context.Context, instanceId string) (models.TestListInstanceDetail, error)
}

// QcCompletedWorker handles the job enqueued when a test list instance is
// completed. It loads the aggregate and dispatches the completion notification;
// what "dispatch" means (mail, webhook) is up to the configured sinks, here it
// is a structured log line downstream systems can consume.
type QcCompletedWorker struct {
	river.WorkerDefaults[models.QcCompletedArgs]

	instances testListInstanceReader
}

func NewQcCompletedWorker(instances testListInstanceReader) *QcCompletedWorker {
	return &QcCompletedWorker{instances: instances}
}

func (w *QcCompletedWorker) Timeout(job *river.Job[models.QcCompletedArgs]) time.Duration {
	return 30 * time.Second
}

func (w *QcCompletedWorker) Work(ctx context.Context, job *river.Job[models.QcCompletedArgs]) error {
	detail, err := w.instances.GetTestListInstance(ctx, job.Args.TestListInstanceId)
	if err != nil {
		return err
	}

	var actionCount, toleranceCount int
	for _, test := range detail.Tests {
		switch test.PassFail {
		case models.PassFailAction:
			actionCount++
		case models.PassFailTolerance:
			toleranceCount++
		}
	}

	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "qc completed",
		"test_list_instance_id", detail.Instance.Id,
		"unit_test_collection_id", detail.Instance.UnitTestCollectionId,
		"performed_by", detail.Instance.CreatedBy,
		"test_count", len(detail.Tests),
		"action_count", actionCount,
		"tolerance_count", toleranceCount,
		"all_reviewed", detail.Instance.AllReviewed,
	)
	return nil
}
