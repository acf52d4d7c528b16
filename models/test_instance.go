package models

import (
	"fmt"
	"time"

	"github.com/qatrackplus/qatrack-backend/pure_utils"
)

// TestInstance is the persisted result of one test within one test list
// instance. Reference and tolerance are snapshots taken at creation time so
// later edits to the live values never change historical classification.
type TestInstance struct {
	Id                 string
	TestListInstanceId string
	TestId             string
	TestSlug           string
	Value              *float64
	StringValue        *string
	DateValue          *time.Time
	DatetimeValue      *time.Time
	Skipped            bool
	Comment            string
	Reference          *Reference
	Tolerance          *Tolerance
	PassFail           PassFail
	StatusId           string
	Order              int
	CreatedBy          string
	CreatedAt          time.Time
}

// ValueDisplay renders the instance's value for the read-side contract, using
// the test's format string for numeric values when one is set.
func (ti TestInstance) ValueDisplay(def TestDefinition) string {
	if ti.Skipped {
		return "Skipped"
	}
	switch {
	case def.Type == TestTypeBoolean && ti.Value != nil:
		if *ti.Value != 0 {
			return "Yes"
		}
		return "No"
	case ti.Value != nil:
		if def.FormatString != "" {
			return fmt.Sprintf(def.FormatString, *ti.Value)
		}
		return pure_utils.FormatToPrecision(*ti.Value, pure_utils.DefaultSignificantFigures)
	case ti.StringValue != nil:
		return *ti.StringValue
	case ti.DateValue != nil:
		return ti.DateValue.Format("2006-01-02")
	case ti.DatetimeValue != nil:
		return ti.DatetimeValue.Format(time.RFC3339)
	}
	return ""
}

// DiffDisplay renders the deviation from the reference in the unit the
// tolerance is expressed in. Empty when no numeric comparison applies.
func (ti TestInstance) DiffDisplay() string {
	if ti.Skipped || ti.Value == nil || ti.Reference == nil || ti.Reference.Type == ReferenceBoolean {
		return ""
	}
	if ti.Tolerance != nil && ti.Tolerance.Type == TolerancePercent {
		if ti.Reference.Value == 0 {
			return ""
		}
		return fmt.Sprintf("%.1f%%", 100*(*ti.Value-ti.Reference.Value)/ti.Reference.Value)
	}
	return pure_utils.FormatToPrecision(*ti.Value-ti.Reference.Value, pure_utils.DefaultSignificantFigures)
}
