package dto

import (
	"encoding/base64"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models"
)

type SubmissionAttachmentBody struct {
	Filename string `json:"filename" binding:"required"`
	// Data is the file content, base64-encoded.
	Data string `json:"data" binding:"required"`
}

type SubmissionBody struct {
	UnitTestCollectionId string                     `json:"unit_test_collection_id" binding:"required"`
	WorkStarted          time.Time                  `json:"work_started" binding:"required"`
	WorkCompleted        *time.Time                 `json:"work_completed"`
	InProgress           bool                       `json:"in_progress"`
	StatusId             *string                    `json:"status_id"`
	UserKey              string                     `json:"user_key" binding:"required"`
	Comment              string                     `json:"comment"`
	Tests                map[string]any             `json:"tests" binding:"required"`
	Attachments          []SubmissionAttachmentBody `json:"attachments"`
}

func (b SubmissionBody) Adapt() (models.Submission, error) {
	submission := models.Submission{
		UnitTestCollectionId: b.UnitTestCollectionId,
		WorkStarted:          b.WorkStarted,
		WorkCompleted:        b.WorkCompleted,
		InProgress:           b.InProgress,
		StatusId:             b.StatusId,
		UserKey:              b.UserKey,
		Comment:              b.Comment,
		Tests:                b.Tests,
	}
	for _, attachment := range b.Attachments {
		data, err := base64.StdEncoding.DecodeString(attachment.Data)
		if err != nil {
			return models.Submission{}, errors.Wrapf(models.BadParameterError,
				"attachment '%s' is not valid base64", attachment.Filename)
		}
		submission.Attachments = append(submission.Attachments, models.AttachmentPayload{
			Filename: attachment.Filename,
			Data:     data,
		})
	}
	return submission, nil
}

type ReviewBody struct {
	ReviewerKey            string            `json:"reviewer_key" binding:"required"`
	StatusByTestInstanceId map[string]string `json:"status_by_test_instance_id" binding:"required"`
}

func (b ReviewBody) Adapt(testListInstanceId string) models.ReviewInput {
	return models.ReviewInput{
		TestListInstanceId:     testListInstanceId,
		ReviewerKey:            b.ReviewerKey,
		StatusByTestInstanceId: b.StatusByTestInstanceId,
	}
}
