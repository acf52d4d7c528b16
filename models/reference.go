package models

import "time"

type ReferenceType string

const (
	ReferenceValue   ReferenceType = "value"
	ReferenceBoolean ReferenceType = "boolean"
)

// Reference is the expected value a test result is compared against.
type Reference struct {
	Id        string
	Type      ReferenceType
	Value     float64
	CreatedAt time.Time
}

type ToleranceType string

const (
	// ToleranceAbsolute thresholds are offsets from the reference value.
	ToleranceAbsolute ToleranceType = "absolute"
	// TolerancePercent thresholds are percent deviations from the reference value.
	TolerancePercent ToleranceType = "percent"
)

// Tolerance describes the acceptable deviation band around a reference. A nil
// bound means unbounded on that side.
type Tolerance struct {
	Id      string
	Type    ToleranceType
	ActLow  *float64
	TolLow  *float64
	TolHigh *float64
	ActHigh *float64
}

type PassFail string

const (
	PassFailOK            PassFail = "ok"
	PassFailTolerance     PassFail = "tolerance"
	PassFailAction        PassFail = "action"
	PassFailNotApplicable PassFail = "not_applicable"
	PassFailNoTolerance   PassFail = "no_tol_set"
)

func (p PassFail) Label() string {
	switch p {
	case PassFailOK:
		return "OK"
	case PassFailTolerance:
		return "Tolerance"
	case PassFailAction:
		return "Action"
	case PassFailNotApplicable:
		return "Not Applicable"
	case PassFailNoTolerance:
		return "No Tol Set"
	}
	return string(p)
}

// ClassifyPassFail is the pure classification function applied to every test
// instance at creation time, against the reference/tolerance snapshot taken at
// that moment.
func ClassifyPassFail(value float64, skipped bool, ref *Reference, tol *Tolerance) PassFail {
	if skipped {
		return PassFailNotApplicable
	}
	if ref == nil {
		return PassFailNoTolerance
	}

	if ref.Type == ReferenceBoolean {
		if value == ref.Value {
			return PassFailOK
		}
		return PassFailAction
	}

	if tol == nil {
		return PassFailNoTolerance
	}

	var diff float64
	switch tol.Type {
	case TolerancePercent:
		if ref.Value == 0 {
			return PassFailNoTolerance
		}
		diff = 100 * (value - ref.Value) / ref.Value
	default:
		diff = value - ref.Value
	}

	if within(diff, tol.TolLow, tol.TolHigh) {
		return PassFailOK
	}
	if within(diff, tol.ActLow, tol.ActHigh) {
		return PassFailTolerance
	}
	return PassFailAction
}

func within(diff float64, low, high *float64) bool {
	if low != nil && diff < *low {
		return false
	}
	if high != nil && diff > *high {
		return false
	}
	return true
}
