package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/qatrackplus/qatrack-backend/models"
)

type CompositeCalculationBody struct {
	TestListId string         `json:"test_list_id" binding:"required"`
	Tests      map[string]any `json:"tests" binding:"required"`
}

type APIResolvedResult struct {
	Slug        string      `json:"slug"`
	Value       *float64    `json:"value,omitempty"`
	StringValue null.String `json:"string_value"`
	Date        *time.Time  `json:"date,omitempty"`
	Datetime    *time.Time  `json:"datetime,omitempty"`
	Skipped     bool        `json:"skipped"`
	Error       string      `json:"error,omitempty"`
	Comment     string      `json:"comment,omitempty"`
}

type APIResolveOutput struct {
	Success bool                         `json:"success"`
	Results map[string]APIResolvedResult `json:"results"`
	Errors  []string                     `json:"errors,omitempty"`
}

func AdaptResolveOutputDto(output models.ResolveOutput) APIResolveOutput {
	out := APIResolveOutput{
		Success: output.Success,
		Results: make(map[string]APIResolvedResult, len(output.Results)),
		Errors:  output.Errors,
	}
	for slug, result := range output.Results {
		out.Results[slug] = APIResolvedResult{
			Slug:        result.Slug,
			Value:       result.Value,
			StringValue: null.StringFromPtr(result.StringValue),
			Date:        result.Date,
			Datetime:    result.Datetime,
			Skipped:     result.Skipped,
			Error:       result.Error,
			Comment:     result.Comment,
		}
	}
	return out
}
