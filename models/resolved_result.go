package models

import "time"

// ResolvedResult is the composite performer's per-test output: the value the
// aggregate builder will persist, or the error that prevents persisting it.
type ResolvedResult struct {
	Slug        string
	Value       *float64
	StringValue *string
	Date        *time.Time
	Datetime    *time.Time
	Skipped     bool
	Error       string
	Comment     string
	Attachments []AttachmentPayload
}

// ResolveOutput is the batch result of a composite resolution. Success is
// false only for batch-level failures; per-test calculation errors live in the
// individual results and callers must check them even when Success is true.
type ResolveOutput struct {
	Success bool
	Results map[string]ResolvedResult
	Errors  []string
}
