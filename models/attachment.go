package models

import "time"

// Attachment is file evidence linked to a test instance (or to the whole test
// list instance for submission-level files).
type Attachment struct {
	Id                 string
	TestInstanceId     *string
	TestListInstanceId *string
	Filename           string
	Data               []byte
	SystemGenerated    bool
	CreatedAt          time.Time
}

// AttachmentPayload is a not-yet-persisted attachment: either uploaded with
// the submission or produced by a calculation procedure via UTILS.
type AttachmentPayload struct {
	Filename        string
	Data            []byte
	SystemGenerated bool
}
