package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBAttachment struct {
	Id                 string    `db:"id"`
	TestInstanceId     *string   `db:"test_instance_id"`
	TestListInstanceId *string   `db:"test_list_instance_id"`
	Filename           string    `db:"filename"`
	Data               []byte    `db:"data"`
	SystemGenerated    bool      `db:"system_generated"`
	CreatedAt          time.Time `db:"created_at"`
}

const TABLE_ATTACHMENTS = "attachments"

var SelectAttachmentColumn = utils.ColumnList[DBAttachment]()

func AdaptAttachment(db DBAttachment) (models.Attachment, error) {
	return models.Attachment{
		Id:                 db.Id,
		TestInstanceId:     db.TestInstanceId,
		TestListInstanceId: db.TestListInstanceId,
		Filename:           db.Filename,
		Data:               db.Data,
		SystemGenerated:    db.SystemGenerated,
		CreatedAt:          db.CreatedAt,
	}, nil
}
