package dto

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APIReference struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type APITolerance struct {
	Type    string   `json:"type"`
	ActLow  *float64 `json:"act_low,omitempty"`
	TolLow  *float64 `json:"tol_low,omitempty"`
	TolHigh *float64 `json:"tol_high,omitempty"`
	ActHigh *float64 `json:"act_high,omitempty"`
}

func adaptReferenceDto(ref *models.Reference) *APIReference {
	if ref == nil {
		return nil
	}
	return &APIReference{Type: string(ref.Type), Value: ref.Value}
}

func adaptToleranceDto(tol *models.Tolerance) *APITolerance {
	if tol == nil {
		return nil
	}
	return &APITolerance{
		Type:    string(tol.Type),
		ActLow:  tol.ActLow,
		TolLow:  tol.TolLow,
		TolHigh: tol.TolHigh,
		ActHigh: tol.ActHigh,
	}
}

type APIUnitTestInfo struct {
	UnitId    string        `json:"unit_id"`
	TestId    string        `json:"test_id"`
	Reference *APIReference `json:"reference,omitempty"`
	Tolerance *APITolerance `json:"tolerance,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func AdaptUnitTestInfoDto(info models.UnitTestInfo) APIUnitTestInfo {
	return APIUnitTestInfo{
		UnitId:    info.UnitId,
		TestId:    info.TestId,
		Reference: adaptReferenceDto(info.Reference),
		Tolerance: adaptToleranceDto(info.Tolerance),
		UpdatedAt: info.UpdatedAt,
	}
}

type SetUnitTestInfoBody struct {
	TestId    string        `json:"test_id" binding:"required"`
	Reference *APIReference `json:"reference"`
	Tolerance *APITolerance `json:"tolerance"`
}

func (b SetUnitTestInfoBody) Adapt(unitId string) models.SetUnitTestInfoInput {
	input := models.SetUnitTestInfoInput{UnitId: unitId, TestId: b.TestId}
	if b.Reference != nil {
		input.Reference = &models.Reference{
			Type:  models.ReferenceType(b.Reference.Type),
			Value: b.Reference.Value,
		}
	}
	if b.Tolerance != nil {
		input.Tolerance = &models.Tolerance{
			Type:    models.ToleranceType(b.Tolerance.Type),
			ActLow:  b.Tolerance.ActLow,
			TolLow:  b.Tolerance.TolLow,
			TolHigh: b.Tolerance.TolHigh,
			ActHigh: b.Tolerance.ActHigh,
		}
	}
	return input
}
