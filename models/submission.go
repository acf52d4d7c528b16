package models

import "time"

// SubmittedValue is the normalized form of one test's raw submission entry.
// Which field is populated follows the test's declared type; booleans are
// carried as 0/1 in Value.
type SubmittedValue struct {
	Slug          string
	Value         *float64
	StringValue   *string
	DateValue     *time.Time
	DatetimeValue *time.Time
	Skipped       bool
	Comment       string
	Filename      string
	FileData      []byte
}

// IsBlank reports whether no value of any kind was submitted.
func (v SubmittedValue) IsBlank() bool {
	return v.Value == nil && v.StringValue == nil && v.DateValue == nil &&
		v.DatetimeValue == nil && len(v.FileData) == 0
}

// Submission is the raw perform-QC request, before normalization. Tests maps
// slug to the raw entry as decoded from JSON; the normalizer rejects entries
// that are not objects.
type Submission struct {
	UnitTestCollectionId string
	WorkStarted          time.Time
	WorkCompleted        *time.Time
	InProgress           bool
	StatusId             *string
	UserKey              string
	Comment              string
	Tests                map[string]any
	Attachments          []AttachmentPayload
}
