package perform_qc

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/pure_utils"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// NormalizeSubmission validates the raw per-test entries of a submission
// against the list's test definitions and returns the slug-keyed normalized
// values. Problems are collected across all tests so the caller gets the full
// list in one round-trip; if anything is wrong the returned error is a
// models.ValidationError and the map is nil.
func NormalizeSubmission(
	testList models.TestListDefinition,
	submission models.Submission,
) (map[string]models.SubmittedValue, error) {
	if submission.WorkCompleted != nil && submission.WorkCompleted.Before(submission.WorkStarted) {
		return nil, models.ErrTemporalOrder
	}

	tests := testList.FlattenedTests()
	knownSlugs := make(map[string]bool, len(tests))
	for _, test := range tests {
		knownSlugs[test.Slug] = true
	}

	var messages []string
	var malformed, missing, wrongType []string

	for slug := range submission.Tests {
		if !knownSlugs[slug] {
			messages = append(messages, fmt.Sprintf("test '%s' is not part of the test list", slug))
		}
	}

	normalized := make(map[string]models.SubmittedValue, len(tests))

	for _, test := range tests {
		raw, present := submission.Tests[test.Slug]

		if !present {
			switch {
			case test.Type == models.TestTypeConstant:
				normalized[test.Slug] = models.SubmittedValue{
					Slug:  test.Slug,
					Value: test.ConstantValue,
				}
			case test.Type.IsComposite():
				// placeholder, filled in by composite resolution
				normalized[test.Slug] = models.SubmittedValue{Slug: test.Slug}
			default:
				missing = append(missing, test.Slug)
			}
			continue
		}

		entry, ok := raw.(map[string]any)
		if !ok {
			malformed = append(malformed, test.Slug)
			continue
		}

		value, problem := normalizeEntry(test, entry)
		switch problem {
		case problemNone:
			normalized[test.Slug] = value
		case problemMissing:
			missing = append(missing, test.Slug)
		case problemWrongType:
			wrongType = append(wrongType, test.Slug)
		default:
			messages = append(messages, problem.message(test.Slug))
		}
	}

	if len(malformed) > 0 {
		sort.Strings(malformed)
		messages = append(messages, fmt.Sprintf("%s: %s",
			models.ErrMalformedTestData.Error(), strings.Join(malformed, ", ")))
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		messages = append(messages, fmt.Sprintf("missing value for tests: %s", strings.Join(missing, ", ")))
	}
	if len(wrongType) > 0 {
		sort.Strings(wrongType)
		messages = append(messages, fmt.Sprintf("wrong value kind for tests: %s", strings.Join(wrongType, ", ")))
	}

	if len(messages) > 0 {
		return nil, models.NewValidationError(messages...)
	}
	return normalized, nil
}

type entryProblem int

const (
	problemNone entryProblem = iota
	problemMissing
	problemWrongType
	problemInvalidDate
	problemInvalidEncoding
	problemConstantMismatch
	problemInvalidChoice
)

func (p entryProblem) message(slug string) string {
	switch p {
	case problemInvalidDate:
		return fmt.Sprintf("test '%s': %s", slug, models.ErrInvalidDate.Error())
	case problemInvalidEncoding:
		return fmt.Sprintf("test '%s': %s", slug, models.ErrInvalidEncoding.Error())
	case problemConstantMismatch:
		return fmt.Sprintf("test '%s': %s", slug, models.ErrConstantMismatch.Error())
	case problemInvalidChoice:
		return fmt.Sprintf("test '%s': value is not one of the allowed choices", slug)
	}
	return fmt.Sprintf("test '%s': invalid entry", slug)
}

// normalizeEntry maps one raw entry onto the typed SubmittedValue fields
// according to the test's declared type.
func normalizeEntry(test models.TestDefinition, entry map[string]any) (models.SubmittedValue, entryProblem) {
	out := models.SubmittedValue{Slug: test.Slug}

	if skipped, ok := entry["skipped"].(bool); ok {
		out.Skipped = skipped
	}
	if comment, ok := entry["comment"].(string); ok {
		out.Comment = comment
	}

	value := entry["value"]

	switch {
	case test.Type.IsStringType() && !test.Type.IsComposite():
		str, ok := stringOrNil(value, entry["string_value"])
		if !ok {
			if out.Skipped {
				return out, problemNone
			}
			if value == nil && entry["string_value"] == nil {
				return out, problemMissing
			}
			return out, problemWrongType
		}
		if test.Type == models.TestTypeMultipleChoice && !test.IsValidChoice(str) {
			return out, problemInvalidChoice
		}
		out.StringValue = &str

	case test.Type.IsDateType():
		str, ok := stringOrNil(value, entry["date_value"], entry["datetime_value"])
		if !ok {
			if out.Skipped {
				return out, problemNone
			}
			if value == nil && entry["date_value"] == nil && entry["datetime_value"] == nil {
				return out, problemMissing
			}
			return out, problemWrongType
		}
		parsed, err := parseDateValue(test.Type, str)
		if err != nil {
			return out, problemInvalidDate
		}
		if test.Type == models.TestTypeDate {
			out.DateValue = &parsed
		} else {
			out.DatetimeValue = &parsed
		}

	case test.Type == models.TestTypeUpload:
		payload, ok := value.(string)
		if !ok {
			if out.Skipped {
				return out, problemNone
			}
			if value == nil {
				return out, problemMissing
			}
			return out, problemWrongType
		}
		encoding, _ := entry["encoding"].(string)
		data, err := decodePayload(payload, encoding)
		if err != nil {
			return out, problemInvalidEncoding
		}
		out.FileData = data
		if filename, ok := entry["filename"].(string); ok {
			out.Filename = filename
		}

	case test.Type == models.TestTypeConstant:
		submitted, ok := numericOrNil(value)
		if ok && !pure_utils.AlmostEqual(submitted, *test.ConstantValue, pure_utils.DefaultSignificantFigures) {
			return out, problemConstantMismatch
		}
		if !ok && value != nil {
			return out, problemConstantMismatch
		}
		// the declared constant always wins over whatever was submitted
		out.Value = test.ConstantValue

	case test.Type.IsComposite():
		// keep the submitted value so resolution can cross-check it against
		// the recomputed one
		if submitted, ok := numericOrNil(value); ok {
			out.Value = &submitted
		}
		if str, ok := stringOrNil(entry["string_value"]); ok {
			out.StringValue = &str
		}

	default: // simple and boolean
		number, ok := numericOrNil(value)
		if !ok {
			if out.Skipped {
				return out, problemNone
			}
			if value == nil {
				return out, problemMissing
			}
			return out, problemWrongType
		}
		if test.Type == models.TestTypeBoolean {
			if number != 0 {
				number = 1
			}
		}
		out.Value = &number
	}

	return out, problemNone
}

// stringOrNil returns the first candidate that is a non-empty string.
func stringOrNil(candidates ...any) (string, bool) {
	for _, candidate := range candidates {
		if str, ok := candidate.(string); ok && str != "" {
			return str, true
		}
	}
	return "", false
}

// numericOrNil accepts the numeric shapes a decoded JSON body can carry,
// booleans included since they evaluate as 0/1.
func numericOrNil(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func parseDateValue(testType models.TestType, value string) (time.Time, error) {
	if testType == models.TestTypeDate {
		return time.Parse(dateLayout, value)
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(datetimeLayout, value)
}

func decodePayload(payload, encoding string) ([]byte, error) {
	if encoding == "base64" {
		return base64.StdEncoding.DecodeString(payload)
	}
	return []byte(payload), nil
}
