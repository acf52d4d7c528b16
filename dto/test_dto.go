package dto

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APITestDefinition struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Procedure     string    `json:"procedure,omitempty"`
	ConstantValue *float64  `json:"constant_value,omitempty"`
	Choices       []string  `json:"choices,omitempty"`
	FormatString  string    `json:"format_string,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func AdaptTestDefinitionDto(t models.TestDefinition) APITestDefinition {
	return APITestDefinition{
		Id:            t.Id,
		Name:          t.Name,
		Slug:          t.Slug,
		Description:   t.Description,
		Type:          string(t.Type),
		Procedure:     t.Procedure,
		ConstantValue: t.ConstantValue,
		Choices:       t.Choices,
		FormatString:  t.FormatString,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type CreateTestBody struct {
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug" binding:"required"`
	Description   string   `json:"description"`
	Type          string   `json:"type" binding:"required"`
	Procedure     string   `json:"procedure"`
	ConstantValue *float64 `json:"constant_value"`
	Choices       []string `json:"choices"`
	FormatString  string   `json:"format_string"`
}

func (b CreateTestBody) Adapt() models.CreateTestDefinitionInput {
	return models.CreateTestDefinitionInput{
		Name:          b.Name,
		Slug:          b.Slug,
		Description:   b.Description,
		Type:          models.TestTypeFromString(b.Type),
		Procedure:     b.Procedure,
		ConstantValue: b.ConstantValue,
		Choices:       b.Choices,
		FormatString:  b.FormatString,
	}
}

type UpdateTestBody struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Procedure     *string  `json:"procedure"`
	ConstantValue *float64 `json:"constant_value"`
	Choices       []string `json:"choices"`
	FormatString  *string  `json:"format_string"`
}

func (b UpdateTestBody) Adapt(testId string) models.UpdateTestDefinitionInput {
	return models.UpdateTestDefinitionInput{
		Id:            testId,
		Name:          b.Name,
		Description:   b.Description,
		Procedure:     b.Procedure,
		ConstantValue: b.ConstantValue,
		Choices:       b.Choices,
		FormatString:  b.FormatString,
	}
}
