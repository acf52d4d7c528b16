package models

import "time"

// UnitTestInfo holds the currently-active reference and tolerance for one
// (unit, test) pair. Test instances copy these at creation time; editing a
// UnitTestInfo never rewrites history.
type UnitTestInfo struct {
	Id        string
	UnitId    string
	TestId    string
	Reference *Reference
	Tolerance *Tolerance
	UpdatedAt time.Time
}

type SetUnitTestInfoInput struct {
	UnitId    string
	TestId    string
	Reference *Reference
	Tolerance *Tolerance
}
