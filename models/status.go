package models

import "time"

// TestInstanceStatus is the review-state classification owned by each test
// instance. One status is flagged as the default; it is applied when the
// submitting user does not choose one explicitly.
type TestInstanceStatus struct {
	Id             string
	Name           string
	Slug           string
	Description    string
	IsDefault      bool
	RequiresReview bool
	CreatedAt      time.Time
}

type CreateTestInstanceStatusInput struct {
	Name           string
	Slug           string
	Description    string
	IsDefault      bool
	RequiresReview bool
}
