package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBUnitTestInfo struct {
	Id             string    `db:"id"`
	UnitId         string    `db:"unit_id"`
	TestId         string    `db:"test_id"`
	ReferenceType  *string   `db:"reference_type"`
	ReferenceValue *float64  `db:"reference_value"`
	ToleranceType  *string   `db:"tolerance_type"`
	ActLow         *float64  `db:"act_low"`
	TolLow         *float64  `db:"tol_low"`
	TolHigh        *float64  `db:"tol_high"`
	ActHigh        *float64  `db:"act_high"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const TABLE_UNIT_TEST_INFOS = "unit_test_infos"

var SelectUnitTestInfoColumn = utils.ColumnList[DBUnitTestInfo]()

func AdaptUnitTestInfo(db DBUnitTestInfo) (models.UnitTestInfo, error) {
	info := models.UnitTestInfo{
		Id:        db.Id,
		UnitId:    db.UnitId,
		TestId:    db.TestId,
		UpdatedAt: db.UpdatedAt,
	}
	if db.ReferenceType != nil && db.ReferenceValue != nil {
		info.Reference = &models.Reference{
			Id:    db.Id,
			Type:  models.ReferenceType(*db.ReferenceType),
			Value: *db.ReferenceValue,
		}
	}
	if db.ToleranceType != nil {
		info.Tolerance = &models.Tolerance{
			Id:      db.Id,
			Type:    models.ToleranceType(*db.ToleranceType),
			ActLow:  db.ActLow,
			TolLow:  db.TolLow,
			TolHigh: db.TolHigh,
			ActHigh: db.ActHigh,
		}
	}
	return info, nil
}
