package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APITestInstance struct {
	Id            string      `json:"id"`
	TestId        string      `json:"test_id"`
	TestSlug      string      `json:"test_slug"`
	Order         int         `json:"order"`
	Value         *float64    `json:"value,omitempty"`
	StringValue   null.String `json:"string_value"`
	DateValue     null.Time   `json:"date_value"`
	DatetimeValue null.Time   `json:"datetime_value"`
	Skipped       bool        `json:"skipped"`
	Comment       string      `json:"comment,omitempty"`
	ValueDisplay  string      `json:"value_display"`
	DiffDisplay   string      `json:"diff_display,omitempty"`
	// PassFail is rendered as [code, label], e.g. ["ok", "OK"].
	PassFail  [2]string     `json:"pass_fail"`
	Reference *APIReference `json:"reference,omitempty"`
	Tolerance *APITolerance `json:"tolerance,omitempty"`
	StatusId  string        `json:"status_id"`
}

func AdaptTestInstanceDto(ti models.TestInstance, def models.TestDefinition) APITestInstance {
	return APITestInstance{
		Id:            ti.Id,
		TestId:        ti.TestId,
		TestSlug:      ti.TestSlug,
		Order:         ti.Order,
		Value:         ti.Value,
		StringValue:   null.StringFromPtr(ti.StringValue),
		DateValue:     null.TimeFromPtr(ti.DateValue),
		DatetimeValue: null.TimeFromPtr(ti.DatetimeValue),
		Skipped:       ti.Skipped,
		Comment:       ti.Comment,
		ValueDisplay:  ti.ValueDisplay(def),
		DiffDisplay:   ti.DiffDisplay(),
		PassFail:      [2]string{string(ti.PassFail), ti.PassFail.Label()},
		Reference:     adaptReferenceDto(ti.Reference),
		Tolerance:     adaptToleranceDto(ti.Tolerance),
		StatusId:      ti.StatusId,
	}
}

type APIAttachment struct {
	Id                 string      `json:"id"`
	TestInstanceId     null.String `json:"test_instance_id"`
	TestListInstanceId null.String `json:"test_list_instance_id"`
	Filename           string      `json:"filename"`
	Size               int         `json:"size"`
	SystemGenerated    bool        `json:"system_generated"`
	CreatedAt          time.Time   `json:"created_at"`
}

func AdaptAttachmentDto(a models.Attachment) APIAttachment {
	return APIAttachment{
		Id:                 a.Id,
		TestInstanceId:     null.StringFromPtr(a.TestInstanceId),
		TestListInstanceId: null.StringFromPtr(a.TestListInstanceId),
		Filename:           a.Filename,
		Size:               len(a.Data),
		SystemGenerated:    a.SystemGenerated,
		CreatedAt:          a.CreatedAt,
	}
}

type APITestListInstance struct {
	Id                   string      `json:"id"`
	UnitTestCollectionId string      `json:"unit_test_collection_id"`
	TestListId           string      `json:"test_list_id"`
	WorkStarted          time.Time   `json:"work_started"`
	WorkCompleted        null.Time   `json:"work_completed"`
	InProgress           bool        `json:"in_progress"`
	Comment              string      `json:"comment,omitempty"`
	AllReviewed          bool        `json:"all_reviewed"`
	ReviewedBy           null.String `json:"reviewed_by"`
	ReviewedAt           null.Time   `json:"reviewed_at"`
	CreatedBy            string      `json:"created_by"`
	CreatedAt            time.Time   `json:"created_at"`
	ModifiedBy           string      `json:"modified_by"`
	ModifiedAt           time.Time   `json:"modified_at"`
}

func AdaptTestListInstanceDto(tli models.TestListInstance) APITestListInstance {
	return APITestListInstance{
		Id:                   tli.Id,
		UnitTestCollectionId: tli.UnitTestCollectionId,
		TestListId:           tli.TestListId,
		WorkStarted:          tli.WorkStarted,
		WorkCompleted:        null.TimeFromPtr(tli.WorkCompleted),
		InProgress:           tli.InProgress,
		Comment:              tli.Comment,
		AllReviewed:          tli.AllReviewed,
		ReviewedBy:           null.StringFromPtr(tli.ReviewedBy),
		ReviewedAt:           null.TimeFromPtr(tli.ReviewedAt),
		CreatedBy:            tli.CreatedBy,
		CreatedAt:            tli.CreatedAt,
		ModifiedBy:           tli.ModifiedBy,
		ModifiedAt:           tli.ModifiedAt,
	}
}

type APITestListInstanceDetail struct {
	APITestListInstance
	Tests       []APITestInstance `json:"tests"`
	Attachments []APIAttachment   `json:"attachments"`
}

func AdaptTestListInstanceDetailDto(detail models.TestListInstanceDetail) APITestListInstanceDetail {
	out := APITestListInstanceDetail{
		APITestListInstance: AdaptTestListInstanceDto(detail.Instance),
		Tests:               make([]APITestInstance, 0, len(detail.Tests)),
		Attachments:         make([]APIAttachment, 0, len(detail.Attachments)),
	}
	for _, test := range detail.Tests {
		out.Tests = append(out.Tests, AdaptTestInstanceDto(test, detail.TestsById[test.TestId]))
	}
	for _, attachment := range detail.Attachments {
		out.Attachments = append(out.Attachments, AdaptAttachmentDto(attachment))
	}
	return out
}
