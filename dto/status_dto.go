package dto

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APITestInstanceStatus struct {
	Id             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	IsDefault      bool      `json:"is_default"`
	RequiresReview bool      `json:"requires_review"`
	CreatedAt      time.Time `json:"created_at"`
}

func AdaptTestInstanceStatusDto(status models.TestInstanceStatus) APITestInstanceStatus {
	return APITestInstanceStatus{
		Id:             status.Id,
		Name:           status.Name,
		Slug:           status.Slug,
		Description:    status.Description,
		IsDefault:      status.IsDefault,
		RequiresReview: status.RequiresReview,
		CreatedAt:      status.CreatedAt,
	}
}

type CreateStatusBody struct {
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	IsDefault      bool   `json:"is_default"`
	RequiresReview bool   `json:"requires_review"`
}

func (b CreateStatusBody) Adapt() models.CreateTestInstanceStatusInput {
	return models.CreateTestInstanceStatusInput{
		Name:           b.Name,
		Slug:           b.Slug,
		Description:    b.Description,
		IsDefault:      b.IsDefault,
		RequiresReview: b.RequiresReview,
	}
}

type APIAutoReviewRule struct {
	Id       string `json:"id"`
	PassFail string `json:"pass_fail"`
	StatusId string `json:"status_id"`
}

func AdaptAutoReviewRuleDto(rule models.AutoReviewRule) APIAutoReviewRule {
	return APIAutoReviewRule{
		Id:       rule.Id,
		PassFail: string(rule.PassFail),
		StatusId: rule.StatusId,
	}
}
