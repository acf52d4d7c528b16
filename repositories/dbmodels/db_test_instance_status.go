package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBTestInstanceStatus struct {
	Id             string    `db:"id"`
	Name           string    `db:"name"`
	Slug           string    `db:"slug"`
	Description    string    `db:"description"`
	IsDefault      bool      `db:"is_default"`
	RequiresReview bool      `db:"requires_review"`
	CreatedAt      time.Time `db:"created_at"`
}

const TABLE_TEST_INSTANCE_STATUSES = "test_instance_statuses"

var SelectTestInstanceStatusColumn = utils.ColumnList[DBTestInstanceStatus]()

func AdaptTestInstanceStatus(db DBTestInstanceStatus) (models.TestInstanceStatus, error) {
	return models.TestInstanceStatus{
		Id:             db.Id,
		Name:           db.Name,
		Slug:           db.Slug,
		Description:    db.Description,
		IsDefault:      db.IsDefault,
		RequiresReview: db.RequiresReview,
		CreatedAt:      db.CreatedAt,
	}, nil
}
