package dbmodels

import (
	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/utils"
)

type DBAutoReviewRule struct {
	Id       string `db:"id"`
	PassFail string `db:"pass_fail"`
	StatusId string `db:"status_id"`
}

const TABLE_AUTO_REVIEW_RULES = "auto_review_rules"

var SelectAutoReviewRuleColumn = utils.ColumnList[DBAutoReviewRule]()

func AdaptAutoReviewRule(db DBAutoReviewRule) (models.AutoReviewRule, error) {
	return models.AutoReviewRule{
		Id:       db.Id,
		PassFail: models.PassFail(db.PassFail),
		StatusId: db.StatusId,
	}, nil
}
