package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBUnit struct {
	Id        string    `db:"id"`
	Name      string    `db:"name"`
	Site      string    `db:"site"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

const TABLE_UNITS = "units"

var SelectUnitColumn = utils.ColumnList[DBUnit]()

func AdaptUnit(db DBUnit) (models.Unit, error) {
	return models.Unit{
		Id:        db.Id,
		Name:      db.Name,
		Site:      db.Site,
		Active:    db.Active,
		CreatedAt: db.CreatedAt,
	}, nil
}

type DBUnitTestCollection struct {
	Id            string     `db:"id"`
	UnitId        string     `db:"unit_id"`
	TestListId    string     `db:"test_list_id"`
	Name          string     `db:"name"`
	FrequencyDays *int       `db:"frequency_days"`
	DueDate       *time.Time `db:"due_date"`
	CreatedAt     time.Time  `db:"created_at"`
}

const TABLE_UNIT_TEST_COLLECTIONS = "unit_test_collections"

var SelectUnitTestCollectionColumn = utils.ColumnList[DBUnitTestCollection]()

func AdaptUnitTestCollection(db DBUnitTestCollection) (models.UnitTestCollection, error) {
	return models.UnitTestCollection{
		Id:            db.Id,
		UnitId:        db.UnitId,
		TestListId:    db.TestListId,
		Name:          db.Name,
		FrequencyDays: db.FrequencyDays,
		DueDate:       db.DueDate,
		CreatedAt:     db.CreatedAt,
	}, nil
}
