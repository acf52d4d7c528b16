package models

import "time"

// TestListInstance is one performance of a test list on a unit: the aggregate
// root owning one TestInstance per test. Created atomically with all its
// children.
type TestListInstance struct {
	Id                   string
	UnitTestCollectionId string
	TestListId           string
	WorkStarted          time.Time
	WorkCompleted        *time.Time
	InProgress           bool
	Comment              string
	AllReviewed          bool
	ReviewedBy           *string
	ReviewedAt           *time.Time
	CreatedBy            string
	CreatedAt            time.Time
	ModifiedBy           string
	ModifiedAt           time.Time
}

// TestListInstanceDetail is the read-side aggregate: the instance, its
// children in order, the definitions they were performed against, and all
// linked attachments.
type TestListInstanceDetail struct {
	Instance    TestListInstance
	Tests       []TestInstance
	TestsById   map[string]TestDefinition
	Attachments []Attachment
}

// ReviewInput replaces child statuses through the explicit review workflow.
type ReviewInput struct {
	TestListInstanceId string
	ReviewerKey        string
	// StatusByTestInstanceId maps each child to its new status; children left
	// out keep their current one.
	StatusByTestInstanceId map[string]string
}
