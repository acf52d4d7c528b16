package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) BatchInsertAttachments(ctx context.Context, exec Executor,
	attachments []models.Attachment,
) error {
	if len(attachments) == 0 {
		return nil
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_ATTACHMENTS).
		Columns("id", "test_instance_id", "test_list_instance_id", "filename", "data", "system_generated")
	for _, attachment := range attachments {
		query = query.Values(
			attachment.Id,
			attachment.TestInstanceId,
			attachment.TestListInstanceId,
			attachment.Filename,
			attachment.Data,
			attachment.SystemGenerated,
		)
	}
	return ExecBuilder(ctx, exec, query)
}

func (repo *QaDbRepository) ListAttachmentsForTestListInstance(ctx context.Context, exec Executor,
	testListInstanceId string,
) ([]models.Attachment, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAttachmentColumn...).
			From(dbmodels.TABLE_ATTACHMENTS).
			Where(squirrel.Or{
				squirrel.Eq{"test_list_instance_id": testListInstanceId},
				squirrel.Expr(
					"test_instance_id IN (SELECT id FROM "+dbmodels.TABLE_TEST_INSTANCES+
						" WHERE test_list_instance_id = ?)", testListInstanceId),
			}).
			OrderBy("created_at"),
		dbmodels.AdaptAttachment,
	)
}
