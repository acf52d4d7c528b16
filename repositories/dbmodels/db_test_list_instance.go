package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBTestListInstance struct {
	Id                   string     `db:"id"`
	UnitTestCollectionId string     `db:"unit_test_collection_id"`
	TestListId           string     `db:"test_list_id"`
	WorkStarted          time.Time  `db:"work_started"`
	WorkCompleted        *time.Time `db:"work_completed"`
	InProgress           bool       `db:"in_progress"`
	Comment              string     `db:"comment"`
	AllReviewed          bool       `db:"all_reviewed"`
	ReviewedBy           *string    `db:"reviewed_by"`
	ReviewedAt           *time.Time `db:"reviewed_at"`
	CreatedBy            string     `db:"created_by"`
	CreatedAt            time.Time  `db:"created_at"`
	ModifiedBy           string     `db:"modified_by"`
	ModifiedAt           time.Time  `db:"modified_at"`
}

const TABLE_TEST_LIST_INSTANCES = "test_list_instances"

var SelectTestListInstanceColumn = utils.ColumnList[DBTestListInstance]()

func AdaptTestListInstance(db DBTestListInstance) (models.TestListInstance, error) {
	return models.TestListInstance{
		Id:                   db.Id,
		UnitTestCollectionId: db.UnitTestCollectionId,
		TestListId:           db.TestListId,
		WorkStarted:          db.WorkStarted,
		WorkCompleted:        db.WorkCompleted,
		InProgress:           db.InProgress,
		Comment:              db.Comment,
		AllReviewed:          db.AllReviewed,
		ReviewedBy:           db.ReviewedBy,
		ReviewedAt:           db.ReviewedAt,
		CreatedBy:            db.CreatedBy,
		CreatedAt:            db.CreatedAt,
		ModifiedBy:           db.ModifiedBy,
		ModifiedAt:           db.ModifiedAt,
	}, nil
}
