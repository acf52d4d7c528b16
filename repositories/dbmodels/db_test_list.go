package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBTestList struct {
	Id          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const TABLE_TEST_LISTS = "test_lists"

var SelectTestListColumn = utils.ColumnList[DBTestList]()

func AdaptTestList(db DBTestList) (models.TestListDefinition, error) {
	return models.TestListDefinition{
		Id:          db.Id,
		Name:        db.Name,
		Slug:        db.Slug,
		Description: db.Description,
		CreatedAt:   db.CreatedAt,
		UpdatedAt:   db.UpdatedAt,
	}, nil
}

// DBTestListItem is one membership row: a test or a sublist at a position.
type DBTestListItem struct {
	Id         string  `db:"id"`
	TestListId string  `db:"test_list_id"`
	OrderIndex int     `db:"order_index"`
	TestId     *string `db:"test_id"`
	SublistId  *string `db:"sublist_id"`
}

const TABLE_TEST_LIST_ITEMS = "test_list_items"

var SelectTestListItemColumn = utils.ColumnList[DBTestListItem]()
