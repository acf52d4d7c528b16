package dbmodels

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBTestDefinition struct {
	Id            string    `db:"id"`
	Name          string    `db:"name"`
	Slug          string    `db:"slug"`
	Description   string    `db:"description"`
	Type          string    `db:"type"`
	Procedure     string    `db:"procedure"`
	ConstantValue *float64  `db:"constant_value"`
	Choices       []string  `db:"choices"`
	FormatString  string    `db:"format_string"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

const TABLE_TEST_DEFINITIONS = "test_definitions"

var SelectTestDefinitionColumn = utils.ColumnList[DBTestDefinition]()

func AdaptTestDefinition(db DBTestDefinition) (models.TestDefinition, error) {
	return models.TestDefinition{
		Id:            db.Id,
		Name:          db.Name,
		Slug:          db.Slug,
		Description:   db.Description,
		Type:          models.TestTypeFromString(db.Type),
		Procedure:     db.Procedure,
		ConstantValue: db.ConstantValue,
		Choices:       db.Choices,
		FormatString:  db.FormatString,
		CreatedAt:     db.CreatedAt,
		UpdatedAt:     db.UpdatedAt,
	}, nil
}
