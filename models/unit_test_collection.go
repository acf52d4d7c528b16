package models

import "time"

// Unit is a piece of equipment QC is performed on.
type Unit struct {
	Id        string
	Name      string
	Site      string
	Active    bool
	CreatedAt time.Time
}

// UnitTestCollection binds a test list to a unit and carries its scheduling
// state.
type UnitTestCollection struct {
	Id            string
	UnitId        string
	TestListId    string
	Name          string
	FrequencyDays *int
	DueDate       *time.Time
	CreatedAt     time.Time
}

// NextDueDate computes the due date following a completed performance. Ad-hoc
// collections (no frequency) have no due date.
func (utc UnitTestCollection) NextDueDate(workCompleted time.Time) *time.Time {
	if utc.FrequencyDays == nil {
		return nil
	}
	due := workCompleted.AddDate(0, 0, *utc.FrequencyDays)
	return &due
}

type CreateUnitTestCollectionInput struct {
	UnitId        string
	TestListId    string
	Name          string
	FrequencyDays *int
}
