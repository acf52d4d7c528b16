package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

// DBTestInstance flattens the reference/tolerance snapshot into nullable
// columns; a null ref_type means no reference was set when the instance was
// created.
type DBTestInstance struct {
	Id                 string     `db:"id"`
	TestListInstanceId string     `db:"test_list_instance_id"`
	TestId             string     `db:"test_id"`
	TestSlug           string     `db:"test_slug"`
	Value              *float64   `db:"value"`
	StringValue        *string    `db:"string_value"`
	DateValue          *time.Time `db:"date_value"`
	DatetimeValue      *time.Time `db:"datetime_value"`
	Skipped            bool       `db:"skipped"`
	Comment            string     `db:"comment"`
	RefType            *string    `db:"ref_type"`
	RefValue           *float64   `db:"ref_value"`
	TolType            *string    `db:"tol_type"`
	ActLow             *float64   `db:"act_low"`
	TolLow             *float64   `db:"tol_low"`
	TolHigh            *float64   `db:"tol_high"`
	ActHigh            *float64   `db:"act_high"`
	PassFail           string     `db:"pass_fail"`
	StatusId           string     `db:"status_id"`
	OrderIndex         int        `db:"order_index"`
	CreatedBy          string     `db:"created_by"`
	CreatedAt          time.Time  `db:"created_at"`
}

const TABLE_TEST_INSTANCES = "test_instances"

var SelectTestInstanceColumn = utils.ColumnList[DBTestInstance]()

func AdaptTestInstance(db DBTestInstance) (models.TestInstance, error) {
	instance := models.TestInstance{
		Id:                 db.Id,
		TestListInstanceId: db.TestListInstanceId,
		TestId:             db.TestId,
		TestSlug:           db.TestSlug,
		Value:              db.Value,
		StringValue:        db.StringValue,
		DateValue:          db.DateValue,
		DatetimeValue:      db.DatetimeValue,
		Skipped:            db.Skipped,
		Comment:            db.Comment,
		PassFail:           models.PassFail(db.PassFail),
		StatusId:           db.StatusId,
		Order:              db.OrderIndex,
		CreatedBy:          db.CreatedBy,
		CreatedAt:          db.CreatedAt,
	}
	if db.RefType != nil && db.RefValue != nil {
		instance.Reference = &models.Reference{
			Type:  models.ReferenceType(*db.RefType),
			Value: *db.RefValue,
		}
	}
	if db.TolType != nil {
		instance.Tolerance = &models.Tolerance{
			Type:    models.ToleranceType(*db.TolType),
			ActLow:  db.ActLow,
			TolLow:  db.TolLow,
			TolHigh: db.TolHigh,
			ActHigh: db.ActHigh,
		}
	}
	return instance, nil
}
