package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

const (
	nbRetriesQcCompleted = 5
	priorityQcCompleted  = 3
)

type TaskQueueRepository interface {
	EnqueueQcCompletedTask(ctx context.Context, tx Transaction, testListInstanceId string) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

func (r riverRepository) EnqueueQcCompletedTask(
	ctx context.Context,
	tx Transaction,
	testListInstanceId string,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.QcCompletedArgs{
		TestListInstanceId: testListInstanceId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesQcCompleted,
		Priority:    priorityQcCompleted,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "enqueued qc completed task",
		"test_list_instance_id", testListInstanceId, "job_id", res.Job.ID)
	return nil
}
